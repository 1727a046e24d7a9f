package evaluator

import (
	"context"
	"strings"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/executor"
)

func pass(details string) Outcome    { return Outcome{Status: check.StatusPass, Details: details} }
func warning(details string) Outcome { return Outcome{Status: check.StatusWarning, Details: details} }
func fail(details string) Outcome    { return Outcome{Status: check.StatusFail, Details: details} }
func unknown(details string) Outcome { return Outcome{Status: check.StatusUnknown, Details: details} }

// fixed returns a rule with a constant outcome
func fixed(o Outcome) Rule {
	return func(context.Context, Probe) Outcome { return o }
}

// detailsOr picks the text shown for a probe: stdout when present, the
// timeout marker when the probe was killed, otherwise fallback.
func detailsOr(out executor.Output, fallback string) string {
	switch {
	case out.Stdout != "":
		return out.Stdout
	case out.TimedOut():
		return out.Stderr
	default:
		return fallback
	}
}

// containsRule passes when stdout contains marker and fails otherwise
func containsRule(cmdline, marker, emptyDetails string) Rule {
	return func(ctx context.Context, p Probe) Outcome {
		out := p.Shell(ctx, cmdline)
		details := detailsOr(out, emptyDetails)
		if strings.Contains(out.Stdout, marker) {
			return pass(details)
		}
		return fail(details)
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
