package executor

import (
	"strings"

	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
)

// Output is the complete outcome of one probe process. Every failure mode of
// the executor is encoded here; callers never receive an error value.
type Output struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// TimedOut reports whether the process was killed at its deadline.
func (o Output) TimedOut() bool {
	return o.ExitCode == consts.TimeoutExitCode && o.Stderr == consts.TimeoutMarker
}

// Succeeded reports a zero exit status.
func (o Output) Succeeded() bool {
	return o.ExitCode == 0
}

// PermissionDenied reports whether stderr shows the probe lacked privileges.
func (o Output) PermissionDenied() bool {
	lower := strings.ToLower(o.Stderr)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "operation not permitted")
}

func timeoutOutput() Output {
	return Output{Stdout: "", Stderr: consts.TimeoutMarker, ExitCode: consts.TimeoutExitCode}
}

func spawnFailure(err error) Output {
	return Output{Stdout: "", Stderr: err.Error(), ExitCode: consts.SpawnFailureExitCode}
}
