package executor

import (
	"fmt"

	"github.com/google/shlex"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

// ParseCommand splits a command line into an executable and its arguments
// using shell quoting rules, without invoking a shell.
func ParseCommand(line string) (string, []string, error) {
	parts, err := shlex.Split(line)
	if err != nil {
		return "", nil, fmt.Errorf("parse command %q: %w", line, err)
	}
	if len(parts) == 0 {
		return "", nil, sharedErrors.ErrEmptyCommand
	}
	return parts[0], parts[1:], nil
}
