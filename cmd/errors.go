package cmd

import (
	"errors"
	"fmt"
)

const (
	exitFailure        = 1
	exitScoreThreshold = 2
)

// CheckNotFoundError indicates a check id lookup failure.
type CheckNotFoundError struct {
	ID string
}

func (e *CheckNotFoundError) Error() string {
	return fmt.Sprintf("check %s not found (see 'seca-host checks list')", e.ID)
}

// ScoreThresholdError signals that a scan scored below --min-score.
type ScoreThresholdError struct {
	Score     float64
	Threshold float64
}

func (e *ScoreThresholdError) Error() string {
	return fmt.Sprintf("score %.1f is below the required minimum %.1f", e.Score, e.Threshold)
}

// exitCode maps command errors to process exit codes
func exitCode(err error) int {
	var threshold *ScoreThresholdError
	if errors.As(err, &threshold) {
		return exitScoreThreshold
	}
	return exitFailure
}
