package check

import (
	"fmt"
	"strings"
)

// Status is the resolved outcome of a single check
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
	StatusUnknown Status = "unknown"
)

// Statuses lists every status from best to worst.
func Statuses() []Status {
	return []Status{StatusPass, StatusWarning, StatusFail, StatusUnknown}
}

// IsValid reports whether s is one of the four statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPass, StatusWarning, StatusFail, StatusUnknown:
		return true
	}
	return false
}

// Rank orders statuses for scoring. Fail and Unknown share the lowest rank.
func (s Status) Rank() int {
	switch s {
	case StatusPass:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Points returns the score contribution of a check with the given severity.
// Warning earns half credit rounded down.
func (s Status) Points(severity int) int {
	switch s {
	case StatusPass:
		return severity
	case StatusWarning:
		return severity / 2
	default:
		return 0
	}
}

// Label is the human-readable status used in reports
func (s Status) Label() string {
	switch s {
	case StatusPass:
		return "Secure"
	case StatusWarning:
		return "Warning"
	case StatusFail:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a status name case-insensitively
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid status %q", v)
	}
	return s, nil
}
