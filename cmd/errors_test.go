package cmd

import (
	"errors"
	"fmt"
	"testing"
)

func TestCheckNotFoundError(t *testing.T) {
	err := &CheckNotFoundError{ID: "nope"}
	want := "check nope not found (see 'seca-host checks list')"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}

func TestScoreThresholdError(t *testing.T) {
	err := &ScoreThresholdError{Score: 58.333, Threshold: 80}
	want := "score 58.3 is below the required minimum 80.0"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), exitFailure},
		{"threshold", &ScoreThresholdError{Score: 10, Threshold: 50}, exitScoreThreshold},
		{"wrapped threshold", fmt.Errorf("scan: %w", &ScoreThresholdError{}), exitScoreThreshold},
		{"not found", &CheckNotFoundError{ID: "x"}, exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Fatalf("exitCode = %d, want %d", got, tt.want)
			}
		})
	}
}
