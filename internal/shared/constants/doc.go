// Package constants centralizes defaults shared across the CLI and the engine.
//
// Probe timeouts, the timeout sentinel exit code, file permissions, and score
// band thresholds live here so cmd/ and internal/ agree on them without
// introducing import cycles.
package constants
