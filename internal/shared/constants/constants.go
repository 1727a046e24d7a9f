package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbeTimeout bounds a single probe from process start.
	DefaultProbeTimeout = 5 * time.Second
	// DefaultShell interprets full probe command lines.
	DefaultShell = "/bin/bash"
	// TimeoutExitCode is reported when a probe is killed at its deadline.
	TimeoutExitCode = 124
	// SpawnFailureExitCode is reported when the probe process could not be started.
	SpawnFailureExitCode = 1
	// TimeoutMarker is the stderr text of a timed-out probe.
	TimeoutMarker = "Command timeout"
)

const (
	// SignatureFreshnessWindow is the maximum age of malware signatures before a warning.
	SignatureFreshnessWindow = 7 * 24 * time.Hour
	// DefaultOSVersionCommand asks the host for its product version.
	DefaultOSVersionCommand = "sw_vers -productVersion"
)

const (
	// ScoreGreenThreshold is the lowest score rendered in the green band.
	ScoreGreenThreshold = 80.0
	// ScoreAmberThreshold is the lowest score rendered in the amber band.
	ScoreAmberThreshold = 50.0
)
