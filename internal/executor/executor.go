package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"go.uber.org/zap"
)

// Runner runs probe commands. Implementations must never panic and must not
// leave a child process running once a call returns.
type Runner interface {
	// Shell interprets a full command line with the configured shell.
	Shell(ctx context.Context, cmdline string) Output

	// Exec runs an executable directly with an argument list.
	Exec(ctx context.Context, path string, args ...string) Output
}

// Config controls how probes are spawned.
type Config struct {
	Shell   string
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

// Executor is the process-backed Runner.
type Executor struct {
	shell   string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// New creates an executor, filling unset fields with defaults.
func New(cfg Config) *Executor {
	shell := cfg.Shell
	if shell == "" {
		shell = consts.DefaultShell
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Executor{
		shell:   shell,
		timeout: timeout,
		logger:  logger,
	}
}

// Timeout returns the per-probe deadline.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

func (e *Executor) Shell(ctx context.Context, cmdline string) Output {
	if strings.TrimSpace(cmdline) == "" {
		return spawnFailure(sharedErrors.ErrEmptyCommand)
	}
	return e.run(ctx, e.shell, "-c", cmdline)
}

func (e *Executor) Exec(ctx context.Context, path string, args ...string) Output {
	if strings.TrimSpace(path) == "" {
		return spawnFailure(sharedErrors.ErrEmptyCommand)
	}
	return e.run(ctx, path, args...)
}

func (e *Executor) run(parent context.Context, path string, args ...string) Output {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, e.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, args...) // #nosec G204 -- probe commands come from the compiled-in catalogue or operator config.
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Pipes held open by orphaned grandchildren must not block Wait forever.
	cmd.WaitDelay = time.Second
	prepareCommand(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		e.logger.Debugw("probe spawn failed", "command", path, "error", err)
		return spawnFailure(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		out := Output{
			Stdout:   strings.TrimSpace(stdout.String()),
			Stderr:   strings.TrimSpace(stderr.String()),
			ExitCode: exitCode(cmd, err),
		}
		e.logger.Debugw("probe finished",
			"command", path,
			"exit_code", out.ExitCode,
			"duration", time.Since(start),
		)
		return out
	case <-ctx.Done():
		if err := killProcessTree(cmd); err != nil {
			e.logger.Warnw("failed to kill probe", "command", path, "error", err)
		}
		<-done
		e.logger.Debugw("probe timed out",
			"command", path,
			"timeout", e.timeout,
			"duration", time.Since(start),
		)
		return timeoutOutput()
	}
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		if code := cmd.ProcessState.ExitCode(); code >= 0 {
			return code
		}
		// terminated by a signal we did not send
		return consts.SpawnFailureExitCode
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return consts.SpawnFailureExitCode
	}
	return 0
}

// String describes the executor for logs.
func (e *Executor) String() string {
	return fmt.Sprintf("executor(shell=%s, timeout=%s)", e.shell, e.timeout)
}
