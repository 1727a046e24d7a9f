package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/khanhnv2901/seca-host/internal/executor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// scriptedRunner answers probes by substring match on the command line.
// Each script is consumed in order; the last entry repeats.
type scriptedRunner struct {
	mu      sync.Mutex
	scripts map[string][]string
	calls   map[string]int
}

func newScriptedRunner(scripts map[string][]string) *scriptedRunner {
	return &scriptedRunner{scripts: scripts, calls: make(map[string]int)}
}

func (r *scriptedRunner) Shell(_ context.Context, cmdline string) executor.Output {
	r.mu.Lock()
	defer r.mu.Unlock()
	for marker, outputs := range r.scripts {
		if !strings.Contains(cmdline, marker) || len(outputs) == 0 {
			continue
		}
		i := r.calls[marker]
		r.calls[marker]++
		if i >= len(outputs) {
			i = len(outputs) - 1
		}
		return executor.Output{Stdout: outputs[i]}
	}
	return executor.Output{Stderr: "command not found", ExitCode: 127}
}

func (r *scriptedRunner) Exec(ctx context.Context, path string, args ...string) executor.Output {
	return r.Shell(ctx, strings.Join(append([]string{path}, args...), " "))
}

// healthyHost reports a passing SIP, firewall and Gatekeeper
func healthyHost() map[string][]string {
	return map[string][]string{
		"sw_vers":                   {"14.4.1"},
		"csrutil":                   {"System Integrity Protection status: enabled."},
		"com.apple.alf globalstate": {"1"},
		"spctl":                     {"assessments enabled"},
	}
}

func useProbeRunner(t *testing.T, runner executor.Runner) {
	t.Helper()
	original := probeRunner
	probeRunner = runner
	t.Cleanup(func() { probeRunner = original })
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// resetCommandState isolates a test from flags, config and paths left by
// earlier executions of the shared command tree.
func resetCommandState(t *testing.T) string {
	t.Helper()
	resetFlags(rootCmd)
	resetCLIConfig()
	scanOpts = scanOptions{}
	cfgFile = ""
	envFile = ""
	globalAppContext = nil
	viper.Reset()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv(dataDirEnvVar, filepath.Join(home, "data"))
	disableColor(t)
	t.Cleanup(func() {
		viper.Reset()
		globalAppContext = nil
	})
	return home
}

// executeCommand runs the root command with args and returns its output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommandState(t)
	return runRoot(t, args...)
}

// runRoot executes without resetting state, for tests that prepare it first
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
