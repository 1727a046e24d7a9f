package application

import (
	"fmt"
	"time"

	"github.com/khanhnv2901/seca-host/internal/application/scan"
	"github.com/khanhnv2901/seca-host/internal/evaluator"
	"github.com/khanhnv2901/seca-host/internal/executor"
	"github.com/khanhnv2901/seca-host/internal/registry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the engine assembled by NewContainer
type Options struct {
	Shell        string
	ProbeTimeout time.Duration
	// ProbeRate limits check starts per second; zero disables pacing
	ProbeRate float64
	// Only restricts the scan to these check ids
	Only []string
	// OSVersionCommand overrides the OS version probe. It is run directly,
	// without a shell.
	OSVersionCommand string
	Benchmark        string
	Logger           *zap.SugaredLogger
	// Runner replaces the process executor for probes, mainly in tests
	Runner executor.Runner
}

// Container holds the engine components shared by the CLI and the API server
// This is a simple dependency injection container
type Container struct {
	Executor  *executor.Executor
	Registry  *registry.Registry
	Evaluator *evaluator.Evaluator
	Metrics   *scan.Metrics
	Scanner   *scan.Scanner
}

// NewContainer creates the engine
func NewContainer(opts Options) (*Container, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	exec := executor.New(executor.Config{
		Shell:   opts.Shell,
		Timeout: opts.ProbeTimeout,
		Logger:  logger.Named("executor"),
	})

	reg, err := registry.Default().Filter(opts.Only)
	if err != nil {
		return nil, fmt.Errorf("failed to select checks: %w", err)
	}

	var runner executor.Runner = exec
	if opts.Runner != nil {
		runner = opts.Runner
	}

	eval := evaluator.New(runner, evaluator.WithLogger(logger.Named("evaluator")))
	metrics := scan.NewMetrics(nil)

	cfg := scan.Config{
		Registry:  reg,
		Evaluator: eval,
		Runner:    runner,
		Benchmark: opts.Benchmark,
		Metrics:   metrics,
		Logger:    logger.Named("scan"),
	}
	if opts.OSVersionCommand != "" {
		path, args, err := executor.ParseCommand(opts.OSVersionCommand)
		if err != nil {
			return nil, fmt.Errorf("invalid os version command: %w", err)
		}
		cfg.OSVersionArgv = append([]string{path}, args...)
	}
	if opts.ProbeRate > 0 {
		cfg.Limiter = rate.NewLimiter(rate.Limit(opts.ProbeRate), 1)
	}

	scanner, err := scan.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	return &Container{
		Executor:  exec,
		Registry:  reg,
		Evaluator: eval,
		Metrics:   metrics,
		Scanner:   scanner,
	}, nil
}
