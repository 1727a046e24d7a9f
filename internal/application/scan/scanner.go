// Package scan runs the check catalogue sequentially and assembles the
// resulting report.
package scan

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/evaluator"
	"github.com/khanhnv2901/seca-host/internal/executor"
	"github.com/khanhnv2901/seca-host/internal/registry"
	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// State is the scanner lifecycle state
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Evaluator classifies one check
type Evaluator interface {
	Evaluate(ctx context.Context, def check.Definition) evaluator.Outcome
}

// Config wires a Scanner
type Config struct {
	Registry  *registry.Registry
	Evaluator Evaluator
	// Runner answers the OS version query
	Runner executor.Runner
	// OSVersionCommand is a shell command line; OSVersionArgv, when set,
	// is executed directly instead.
	OSVersionCommand string
	OSVersionArgv    []string
	Benchmark        string
	// Limiter paces check starts; nil means no pacing
	Limiter *rate.Limiter
	Metrics *Metrics
	Logger  *zap.SugaredLogger
	Clock   func() time.Time
}

// Progress is a point-in-time view of the scanner
type Progress struct {
	State     string    `json:"state"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Current   string    `json:"current,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Scanner runs one scan at a time. Checks never run concurrently.
type Scanner struct {
	cfg    Config
	logger *zap.SugaredLogger
	now    func() time.Time

	state           atomic.Int32
	cancelRequested atomic.Bool

	mu       sync.RWMutex
	progress Progress
	last     *check.Report
}

// New validates cfg and creates an idle scanner
func New(cfg Config) (*Scanner, error) {
	if cfg.Registry == nil || cfg.Evaluator == nil || cfg.Runner == nil {
		return nil, fmt.Errorf("%w: scanner needs a registry, an evaluator and a runner", sharedErrors.ErrInvalidInput)
	}
	if cfg.OSVersionCommand == "" {
		cfg.OSVersionCommand = consts.DefaultOSVersionCommand
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	s := &Scanner{
		cfg:    cfg,
		logger: logger,
		now:    now,
	}
	s.progress = Progress{State: StateIdle.String(), Total: cfg.Registry.Len()}
	return s, nil
}

// State returns the current lifecycle state
func (s *Scanner) State() State {
	return State(s.state.Load())
}

// Running reports whether a scan is in progress
func (s *Scanner) Running() bool {
	return s.State() == StateRunning
}

// Cancel asks the running scan to stop before its next check. The check in
// flight is allowed to finish. It returns false when no scan is running.
func (s *Scanner) Cancel() bool {
	if !s.Running() {
		return false
	}
	s.cancelRequested.Store(true)
	return true
}

// Progress returns a snapshot of the current scan
func (s *Scanner) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// Last returns the most recent complete report, or nil
func (s *Scanner) Last() *check.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Checks returns the definitions a scan will run, in order
func (s *Scanner) Checks() []check.Definition {
	return s.cfg.Registry.All()
}

// Run executes every check in registry order and returns the report.
// A cancelled scan returns the partial report of the checks that finished
// together with ErrScanCancelled.
func (s *Scanner) Run(ctx context.Context, observer Observer) (*check.Report, error) {
	if s.Running() {
		return nil, sharedErrors.ErrScanInProgress
	}
	s.cancelRequested.Store(false)
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, sharedErrors.ErrScanInProgress
	}
	released := false
	defer func() {
		if !released {
			s.state.CompareAndSwap(int32(StateRunning), int32(StateIdle))
		}
	}()

	if observer == nil {
		observer = nopObserver{}
	}

	defs := s.cfg.Registry.All()
	total := len(defs)
	started := s.now()
	s.setProgress(Progress{State: StateRunning.String(), Total: total, StartedAt: started})
	s.cfg.Metrics.scanStarted()
	s.logger.Infow("scan started", "checks", total)

	results := make([]*check.Result, 0, total)
	cancelled := false
	for i, def := range defs {
		if s.stopRequested(ctx) {
			cancelled = true
			break
		}
		if s.cfg.Limiter != nil {
			if err := s.cfg.Limiter.Wait(ctx); err != nil {
				cancelled = true
				break
			}
		}

		s.updateProgress(func(p *Progress) { p.Current = def.ID })
		begin := time.Now()
		// a started probe runs to completion even if ctx is cancelled
		outcome := s.cfg.Evaluator.Evaluate(context.WithoutCancel(ctx), def)
		took := time.Since(begin)

		result := check.NewResult(def, outcome.Status, outcome.Details, s.now(), outcome.RequiresElevation)
		results = append(results, result)
		s.updateProgress(func(p *Progress) {
			p.Completed = len(results)
			p.Current = ""
		})
		s.cfg.Metrics.observeResult(result, took)
		s.logger.Debugw("check completed",
			"check", def.ID,
			"status", result.Status(),
			"duration", took,
		)
		observer.OnResult(i, total, result)
	}

	// the version query must run even when the scan context is done
	osVersion := s.osVersion(context.WithoutCancel(ctx))
	report := check.NewReport(s.now(), osVersion, s.cfg.Benchmark, results)
	s.cfg.Metrics.scanFinished(report, cancelled)

	var err error
	if cancelled {
		err = sharedErrors.ErrScanCancelled
		s.logger.Infow("scan cancelled", "completed", len(results), "checks", total)
	} else {
		s.logger.Infow("scan completed",
			"checks", total,
			"score", report.Score(),
			"duration", time.Since(started),
		)
	}

	s.mu.Lock()
	if !cancelled {
		s.last = report
	}
	s.progress.State = StateIdle.String()
	s.progress.Current = ""
	s.mu.Unlock()
	released = true
	s.state.Store(int32(StateIdle))

	observer.OnComplete(report, err)
	return report, err
}

func (s *Scanner) stopRequested(ctx context.Context) bool {
	return s.cancelRequested.Load() || ctx.Err() != nil
}

func (s *Scanner) osVersion(ctx context.Context) string {
	var out executor.Output
	if len(s.cfg.OSVersionArgv) > 0 {
		out = s.cfg.Runner.Exec(ctx, s.cfg.OSVersionArgv[0], s.cfg.OSVersionArgv[1:]...)
	} else {
		out = s.cfg.Runner.Shell(ctx, s.cfg.OSVersionCommand)
	}
	if out.Stdout == "" {
		s.logger.Warnw("os version unavailable", "exit_code", out.ExitCode, "stderr", out.Stderr)
		return "unknown"
	}
	return out.Stdout
}

func (s *Scanner) setProgress(p Progress) {
	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
}

func (s *Scanner) updateProgress(fn func(*Progress)) {
	s.mu.Lock()
	fn(&s.progress)
	s.mu.Unlock()
}
