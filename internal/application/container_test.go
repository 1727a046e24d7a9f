package application

import (
	"context"
	"errors"
	"testing"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/executor"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

func TestNewContainerDefaults(t *testing.T) {
	c, err := NewContainer(Options{})
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.Registry.Len() != 31 {
		t.Fatalf("expected the full catalogue, got %d checks", c.Registry.Len())
	}
	if c.Executor.Timeout().Seconds() != 5 {
		t.Fatalf("expected 5s probe timeout, got %s", c.Executor.Timeout())
	}
	if c.Scanner.Running() {
		t.Fatal("new scanner must be idle")
	}
}

func TestNewContainerOnly(t *testing.T) {
	c, err := NewContainer(Options{Only: []string{"sip_enabled", "gatekeeper_enabled"}})
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.Registry.Len() != 2 || len(c.Scanner.Checks()) != 2 {
		t.Fatalf("expected two selected checks, got %d", c.Registry.Len())
	}

	if _, err := NewContainer(Options{Only: []string{"bogus"}}); !errors.Is(err, sharedErrors.ErrCheckNotFound) {
		t.Fatalf("expected ErrCheckNotFound, got %v", err)
	}
}

func TestNewContainerRejectsBadOSVersionCommand(t *testing.T) {
	if _, err := NewContainer(Options{OSVersionCommand: `sw_vers "unterminated`}); err == nil {
		t.Fatal("expected parse error for unterminated quote")
	}
}

type fixedRunner struct {
	out executor.Output
}

func (f fixedRunner) Shell(context.Context, string) executor.Output { return f.out }

func (f fixedRunner) Exec(context.Context, string, ...string) executor.Output { return f.out }

func TestNewContainerRunnerOverride(t *testing.T) {
	runner := fixedRunner{out: executor.Output{Stdout: "System Integrity Protection status: enabled."}}
	c, err := NewContainer(Options{
		Only:             []string{"sip_enabled"},
		Runner:           runner,
		OSVersionCommand: "sw_vers -productVersion",
		Benchmark:        "CIS",
	})
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	report, err := c.Scanner.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Total() != 1 || report.Results()[0].Status() != check.StatusPass {
		t.Fatalf("expected one passing result, got %+v", report.Results())
	}
	if report.OSVersion() != runner.out.Stdout || report.Benchmark() != "CIS" {
		t.Fatalf("unexpected report metadata: %q %q", report.OSVersion(), report.Benchmark())
	}
}
