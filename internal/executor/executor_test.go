//go:build !windows

package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

func newTestExecutor(timeout time.Duration) *Executor {
	return New(Config{Shell: "/bin/sh", Timeout: timeout})
}

func TestNewAppliesDefaults(t *testing.T) {
	e := New(Config{})
	if e.shell != consts.DefaultShell {
		t.Fatalf("expected default shell %s, got %s", consts.DefaultShell, e.shell)
	}
	if e.Timeout() != consts.DefaultProbeTimeout {
		t.Fatalf("expected default timeout %s, got %s", consts.DefaultProbeTimeout, e.Timeout())
	}
}

func TestShellCapturesTrimmedStreams(t *testing.T) {
	e := newTestExecutor(2 * time.Second)

	out := e.Shell(context.Background(), "printf '  hello world \\n\\n'; printf ' oops \\n' 1>&2")
	if out.Stdout != "hello world" {
		t.Fatalf("expected trimmed stdout, got %q", out.Stdout)
	}
	if out.Stderr != "oops" {
		t.Fatalf("expected trimmed stderr, got %q", out.Stderr)
	}
	if out.ExitCode != 0 || !out.Succeeded() {
		t.Fatalf("expected exit code 0, got %d", out.ExitCode)
	}
}

func TestShellReportsNonZeroExit(t *testing.T) {
	e := newTestExecutor(2 * time.Second)

	out := e.Shell(context.Background(), "echo partial; exit 3")
	if out.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", out.ExitCode)
	}
	if out.Stdout != "partial" {
		t.Fatalf("expected stdout to be captured on failure, got %q", out.Stdout)
	}
	if out.TimedOut() {
		t.Fatal("a failing exit must not be reported as a timeout")
	}
}

func TestShellTimeoutKillsProcess(t *testing.T) {
	timeout := 200 * time.Millisecond
	e := newTestExecutor(timeout)

	start := time.Now()
	out := e.Shell(context.Background(), "echo started; sleep 10")
	elapsed := time.Since(start)

	if out.ExitCode != consts.TimeoutExitCode {
		t.Fatalf("expected exit code %d, got %d", consts.TimeoutExitCode, out.ExitCode)
	}
	if out.Stdout != "" {
		t.Fatalf("expected empty stdout on timeout, got %q", out.Stdout)
	}
	if out.Stderr != consts.TimeoutMarker {
		t.Fatalf("expected timeout marker, got %q", out.Stderr)
	}
	if !out.TimedOut() {
		t.Fatal("expected TimedOut to be true")
	}
	if elapsed > timeout+2*time.Second {
		t.Fatalf("timeout took too long: %s", elapsed)
	}
}

func TestShellTimeoutKillsGrandchildren(t *testing.T) {
	e := newTestExecutor(200 * time.Millisecond)

	start := time.Now()
	// the backgrounded sleep inherits stdout; without a group kill Wait would block on the pipe
	out := e.Shell(context.Background(), "sleep 10 & sleep 10")
	if !out.TimedOut() {
		t.Fatalf("expected timeout, got %+v", out)
	}
	if time.Since(start) > 3*time.Second {
		t.Fatalf("grandchild kept the probe alive for %s", time.Since(start))
	}
}

func TestParentContextCancellationBehavesLikeTimeout(t *testing.T) {
	e := newTestExecutor(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	out := e.Shell(ctx, "sleep 10")
	if !out.TimedOut() {
		t.Fatalf("expected cancelled probe to report timeout, got %+v", out)
	}
}

func TestExecSpawnFailure(t *testing.T) {
	e := newTestExecutor(time.Second)

	out := e.Exec(context.Background(), "/nonexistent/definitely-not-here")
	if out.ExitCode != consts.SpawnFailureExitCode {
		t.Fatalf("expected exit code %d, got %d", consts.SpawnFailureExitCode, out.ExitCode)
	}
	if out.Stdout != "" {
		t.Fatalf("expected empty stdout, got %q", out.Stdout)
	}
	if out.Stderr == "" {
		t.Fatal("expected spawn error message in stderr")
	}
}

func TestExecRunsWithoutShell(t *testing.T) {
	e := newTestExecutor(time.Second)

	out := e.Exec(context.Background(), "/bin/echo", "a;b", "$HOME")
	if out.Stdout != "a;b $HOME" {
		t.Fatalf("expected literal arguments, got %q", out.Stdout)
	}
}

func TestEmptyCommandIsSpawnFailure(t *testing.T) {
	e := newTestExecutor(time.Second)

	for _, out := range []Output{
		e.Shell(context.Background(), "   "),
		e.Exec(context.Background(), ""),
	} {
		if out.ExitCode != consts.SpawnFailureExitCode {
			t.Fatalf("expected spawn failure, got %+v", out)
		}
		if !strings.Contains(out.Stderr, sharedErrors.ErrEmptyCommand.Error()) {
			t.Fatalf("unexpected stderr %q", out.Stderr)
		}
	}
}

func TestOutputPermissionDenied(t *testing.T) {
	tests := []struct {
		stderr string
		want   bool
	}{
		{stderr: "fdesetup: Permission denied", want: true},
		{stderr: "Operation not permitted", want: true},
		{stderr: "no such file", want: false},
		{stderr: "", want: false},
	}
	for _, tt := range tests {
		if got := (Output{Stderr: tt.stderr}).PermissionDenied(); got != tt.want {
			t.Errorf("PermissionDenied(%q) = %v, want %v", tt.stderr, got, tt.want)
		}
	}
}

func TestParseCommand(t *testing.T) {
	path, args, err := ParseCommand(`sw_vers -productVersion "quoted arg"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "sw_vers" {
		t.Fatalf("expected sw_vers, got %s", path)
	}
	if len(args) != 2 || args[1] != "quoted arg" {
		t.Fatalf("unexpected args %#v", args)
	}

	if _, _, err := ParseCommand("   "); !errors.Is(err, sharedErrors.ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}
