package report

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

// HashAlgorithms lists the digests a sidecar can carry, in lookup order
var HashAlgorithms = []string{"sha256", "sha512"}

func newHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", sharedErrors.ErrInvalidHashAlgorithm, algorithm)
	}
}

// ComputeHash returns the hex digest of the file at path
func ComputeHash(path, algorithm string) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path) // #nosec G304 -- path is an exported report.
	if err != nil {
		return "", fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to compute hash: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Seal writes a <path>.<algorithm> companion in the format sha256sum -c
// accepts and returns the digest.
func Seal(path, algorithm string) (string, error) {
	sum, err := ComputeHash(path, algorithm)
	if err != nil {
		return "", err
	}
	content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	if err := os.WriteFile(path+"."+algorithm, []byte(content), consts.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("failed to write hash file: %w", err)
	}
	return sum, nil
}

// Verify checks path against the first companion hash file found and
// returns the algorithm used.
func Verify(path string) (string, error) {
	for _, algorithm := range HashAlgorithms {
		content, err := os.ReadFile(path + "." + algorithm) // #nosec G304 -- sidecar of an operator-supplied path.
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read hash file: %w", err)
		}

		fields := strings.Fields(string(content))
		if len(fields) == 0 {
			return algorithm, fmt.Errorf("%w: empty %s file", sharedErrors.ErrIntegrityMismatch, algorithm)
		}
		actual, err := ComputeHash(path, algorithm)
		if err != nil {
			return algorithm, err
		}
		if !strings.EqualFold(fields[0], actual) {
			return algorithm, sharedErrors.ErrIntegrityMismatch
		}
		return algorithm, nil
	}
	return "", fmt.Errorf("%w for %s", sharedErrors.ErrHashFileNotFound, filepath.Base(path))
}
