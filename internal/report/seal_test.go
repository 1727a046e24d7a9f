package report

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

func TestSealWritesSumFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, sampleReport(), FormatJSON)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	sum, err := Seal(path, "sha256")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if want := fmt.Sprintf("%x", sha256.Sum256(data)); sum != want {
		t.Fatalf("expected digest %s, got %s", want, sum)
	}

	sidecar, err := os.ReadFile(path + ".sha256")
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if want := sum + "  " + filepath.Base(path) + "\n"; string(sidecar) != want {
		t.Fatalf("expected sidecar %q, got %q", want, sidecar)
	}
}

func TestVerify(t *testing.T) {
	for _, algorithm := range HashAlgorithms {
		t.Run(algorithm, func(t *testing.T) {
			path, err := Write(t.TempDir(), sampleReport(), FormatCSV)
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if _, err := Seal(path, algorithm); err != nil {
				t.Fatalf("Seal: %v", err)
			}

			got, err := Verify(path)
			if err != nil || got != algorithm {
				t.Fatalf("Verify = %q, %v", got, err)
			}

			if err := os.WriteFile(path, []byte("tampered"), 0o600); err != nil {
				t.Fatalf("tamper: %v", err)
			}
			if _, err := Verify(path); !errors.Is(err, sharedErrors.ErrIntegrityMismatch) {
				t.Fatalf("expected ErrIntegrityMismatch, got %v", err)
			}
		})
	}
}

func TestVerifyWithoutSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Verify(path); !errors.Is(err, sharedErrors.ErrHashFileNotFound) {
		t.Fatalf("expected ErrHashFileNotFound, got %v", err)
	}
}

func TestComputeHashRejectsUnknownAlgorithm(t *testing.T) {
	_, err := ComputeHash("unused", "md5")
	if !errors.Is(err, sharedErrors.ErrInvalidHashAlgorithm) {
		t.Fatalf("expected ErrInvalidHashAlgorithm, got %v", err)
	}
	if !strings.Contains(err.Error(), "md5") {
		t.Fatalf("expected algorithm in error, got %v", err)
	}
}
