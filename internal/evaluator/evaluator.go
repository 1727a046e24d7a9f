// Package evaluator classifies each check by running its probe through an
// executor.Runner and applying the rule registered for the check id.
package evaluator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/executor"
	"go.uber.org/zap"
)

// NotImplementedDetails is reported for checks without a rule
const NotImplementedDetails = "Check not yet fully implemented"

// Outcome is the classification of one check
type Outcome struct {
	Status            check.Status
	Details           string
	RequiresElevation bool
}

// Rule classifies one check. Rules must be pure functions of the probe
// output and the probe clock.
type Rule func(ctx context.Context, p Probe) Outcome

// Probe is the view of the host a rule gets
type Probe struct {
	runner executor.Runner
	now    func() time.Time
}

// Shell runs a command line through the configured shell
func (p Probe) Shell(ctx context.Context, cmdline string) executor.Output {
	return p.runner.Shell(ctx, cmdline)
}

// Exec runs an executable directly
func (p Probe) Exec(ctx context.Context, path string, args ...string) executor.Output {
	return p.runner.Exec(ctx, path, args...)
}

// Now returns the evaluation time used by threshold rules
func (p Probe) Now() time.Time {
	return p.now()
}

// Evaluator dispatches check ids to rules. The rule table is fixed at
// construction.
type Evaluator struct {
	runner executor.Runner
	now    func() time.Time
	rules  map[string]Rule
	logger *zap.SugaredLogger
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithRule adds or replaces the rule for a check id
func WithRule(id string, rule Rule) Option {
	return func(e *Evaluator) {
		if rule == nil {
			delete(e.rules, id)
			return
		}
		e.rules[id] = rule
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for per-check debug output
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithoutDefaultRules starts from an empty rule table
func WithoutDefaultRules() Option {
	return func(e *Evaluator) {
		e.rules = make(map[string]Rule)
	}
}

// New creates an evaluator over the built-in rule table
func New(runner executor.Runner, opts ...Option) *Evaluator {
	e := &Evaluator{
		runner: runner,
		now:    time.Now,
		rules:  DefaultRules(),
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the rule for def. It never fails: a missing rule yields a
// Warning and a panicking rule yields Unknown.
func (e *Evaluator) Evaluate(ctx context.Context, def check.Definition) (out Outcome) {
	rule, ok := e.rules[def.ID]
	if !ok {
		return Outcome{Status: check.StatusWarning, Details: NotImplementedDetails}
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorw("check rule panicked", "check", def.ID, "panic", r)
			out = Outcome{Status: check.StatusUnknown, Details: fmt.Sprintf("Rule error: %v", r)}
		}
	}()

	out = rule(ctx, Probe{runner: e.runner, now: e.now})
	if !out.Status.IsValid() {
		out.Status = check.StatusUnknown
	}
	e.logger.Debugw("check evaluated", "check", def.ID, "status", out.Status)
	return out
}

// HasRule reports whether a specific rule is registered for id
func (e *Evaluator) HasRule(id string) bool {
	_, ok := e.rules[id]
	return ok
}

// Implemented lists the ids with a registered rule, sorted
func (e *Evaluator) Implemented() []string {
	ids := make([]string, 0, len(e.rules))
	for id := range e.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRules returns a fresh copy of the built-in rule table
func DefaultRules() map[string]Rule {
	rules := make(map[string]Rule)
	for _, group := range []map[string]Rule{
		systemRules,
		accessRules,
		dataRules,
		networkRules,
		threatRules,
	} {
		for id, rule := range group {
			rules[id] = rule
		}
	}
	return rules
}
