package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/khanhnv2901/seca-host/internal/application"
	"github.com/khanhnv2901/seca-host/internal/application/scan"
	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/executor"
	"github.com/khanhnv2901/seca-host/internal/registry"
	"github.com/khanhnv2901/seca-host/internal/report"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const detailsWidth = 72

// probeRunner replaces the process executor when set; tests use it to
// script probe output
var probeRunner executor.Runner

type scanOptions struct {
	only            []string
	export          bool
	exportFormat    string
	hashAlgorithm   string
	progress        bool
	metricsTextfile string
	minScore        float64
	watch           bool
	count           int
}

var scanOpts scanOptions

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the host security checks and print a scored report",
	Long: `Run every check in the catalogue (or the subset given with --only) one after
another, print the classified results grouped by category and the weighted
security score. Use --export to write the report to the reports directory and
--watch to rescan on an interval and report status changes.`,
}

func runScan(cmd *cobra.Command, args []string) error {
	appCtx := getAppContext(cmd)
	opts := scanOpts
	opts.progress = progressEnabled(cmd.Flags().Changed("progress"), scanOpts.progress)
	opts.exportFormat = appCtx.Config.Defaults.ExportFormat
	opts.hashAlgorithm = appCtx.Config.Defaults.HashAlgorithm

	container, err := newScanContainer(appCtx, opts.only)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		return watchScans(ctx, cmd.OutOrStdout(), appCtx, container, opts)
	}

	rep, err := runScanOnce(ctx, cmd.OutOrStdout(), appCtx, container, opts)
	if err != nil {
		return err
	}
	if opts.minScore > 0 && rep.Score() < opts.minScore {
		return &ScoreThresholdError{Score: rep.Score(), Threshold: opts.minScore}
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newScanContainer(appCtx *AppContext, only []string) (*application.Container, error) {
	cfg := appCtx.Config
	container, err := application.NewContainer(application.Options{
		Shell:            cfg.Defaults.Shell,
		ProbeTimeout:     time.Duration(cfg.Defaults.TimeoutSecs) * time.Second,
		ProbeRate:        cfg.Defaults.ProbeRate,
		Only:             only,
		OSVersionCommand: cfg.Defaults.OSVersionCommand,
		Benchmark:        cfg.Defaults.Benchmark,
		Logger:           appCtx.Logger,
		Runner:           probeRunner,
	})
	if err != nil {
		var notFound *registry.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &CheckNotFoundError{ID: notFound.ID}
		}
		return nil, err
	}
	return container, nil
}

// runScanOnce scans, prints the report and handles export. A cancelled scan
// still prints its partial results.
func runScanOnce(ctx context.Context, out io.Writer, appCtx *AppContext, container *application.Container, opts scanOptions) (*check.Report, error) {
	var printer *progressPrinter
	if opts.progress {
		printer = newProgressPrinter(out, container.Registry.Len(), "scan")
		printer.Start()
	}

	var observer scan.Observer
	if printer != nil {
		observer = printer
	}
	rep, err := container.Scanner.Run(ctx, observer)
	if printer != nil {
		printer.Stop()
	}
	if rep != nil {
		printReport(out, rep)
	}
	if err != nil {
		if errors.Is(err, sharedErrors.ErrScanCancelled) {
			fmt.Fprintf(out, "%s Scan cancelled after %d of %d checks\n", colorWarn("!"), rep.Total(), container.Registry.Len())
		}
		return rep, err
	}

	if opts.export {
		format, err := report.ParseFormat(opts.exportFormat)
		if err != nil {
			return rep, err
		}
		path, err := report.Write(appCtx.ReportsDir, rep, format)
		if err != nil {
			return rep, fmt.Errorf("failed to export report: %w", err)
		}
		fmt.Fprintf(out, "%s Report written to %s\n", colorInfo("→"), path)
		if algorithm := opts.hashAlgorithm; hashEnabled(algorithm) {
			sum, err := report.Seal(path, algorithm)
			if err != nil {
				return rep, err
			}
			appCtx.Logger.Debugw("report sealed", "path", path, "algorithm", algorithm, "hash", sum)
		}
	}

	if opts.metricsTextfile != "" {
		if err := container.Metrics.WriteTextfile(opts.metricsTextfile); err != nil {
			return rep, fmt.Errorf("failed to write metrics: %w", err)
		}
		appCtx.Logger.Debugw("metrics written", "path", opts.metricsTextfile)
	}
	return rep, nil
}

// watchScans repeats scans until the context ends or count runs are done.
// Edits to the config file change the interval, alerting and export
// settings from the next run on.
func watchScans(ctx context.Context, out io.Writer, appCtx *AppContext, container *application.Container, opts scanOptions) error {
	if path := viper.ConfigFileUsed(); path != "" {
		watchCtx, stopWatching := context.WithCancel(ctx)
		defer stopWatching()
		go func() {
			err := watchConfigFile(watchCtx, path, appCtx.Logger, func() {
				if err := reloadConfig(); err != nil {
					appCtx.Logger.Warnw("config reload failed, keeping previous settings", "file", path, "error", err)
					return
				}
				appCtx.Logger.Infow("config reloaded", "file", path)
			})
			if err != nil {
				appCtx.Logger.Warnw("config watch disabled", "error", err)
			}
		}()
	}

	var previous *check.Report
	for run := 1; ; run++ {
		cfg := snapshotConfig()
		opts.exportFormat = cfg.Defaults.ExportFormat
		opts.hashAlgorithm = cfg.Defaults.HashAlgorithm

		fmt.Fprintf(out, "%s Scan %d started at %s\n", colorInfo("→"), run, time.Now().Format(time.RFC3339))
		rep, err := runScanOnce(ctx, out, appCtx, container, opts)
		if err != nil {
			if errors.Is(err, sharedErrors.ErrScanCancelled) {
				return nil
			}
			return err
		}

		if previous != nil && cfg.Watch.AlertOnChanges {
			changes := scan.Compare(previous, rep)
			printChanges(out, changes)
			for _, c := range changes {
				appCtx.Logger.Infow("check status changed",
					"check", c.CheckID,
					"from", c.From,
					"to", c.To,
					"regressed", c.Regressed(),
				)
			}
		}
		previous = rep

		if opts.count > 0 && run >= opts.count {
			return nil
		}

		timer := time.NewTimer(cfg.Watch.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

func printReport(out io.Writer, rep *check.Report) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "OS %s · Benchmark %s · %d checks · %s\n",
		rep.OSVersion(), rep.Benchmark(), rep.Total(), rep.Timestamp().Format(time.RFC1123))

	for _, group := range rep.Grouped() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, colorInfo(string(group.Category)))
		for _, res := range group.Results {
			line := fmt.Sprintf("  %s  %s", formatStatusWithColor(res.Status()), res.Name())
			if res.RequiresElevation() {
				line += " " + colorWarn("(requires elevation)")
			}
			fmt.Fprintln(out, line)
			if details := summarizeDetails(res.Details()); details != "" {
				fmt.Fprintf(out, "      %s\n", colorMuted(details))
			}
			if res.Status() != check.StatusPass && res.Remediation() != "" {
				fmt.Fprintf(out, "      → %s\n", res.Remediation())
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderScoreBox(rep))
}

// summarizeDetails keeps the first line of probe output, shortened
func summarizeDetails(details string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(details), "\n")
	first = strings.TrimSpace(first)
	if r := []rune(first); len(r) > detailsWidth {
		first = string(r[:detailsWidth-1]) + "…"
	}
	return first
}

func printChanges(out io.Writer, changes []scan.Change) {
	if len(changes) == 0 {
		fmt.Fprintf(out, "%s No status changes since the previous scan\n", colorSuccess("✓"))
		return
	}
	fmt.Fprintf(out, "%s %d status change(s) since the previous scan\n", colorWarn("!"), len(changes))
	for _, c := range changes {
		marker := colorSuccess("↑")
		if c.Regressed() {
			marker = colorError("↓")
		}
		fmt.Fprintf(out, "  %s %s: %s → %s\n", marker, c.Name, c.From.Label(), c.To.Label())
	}
}

func init() {
	scanCmd.RunE = runScan

	flags := scanCmd.Flags()
	flags.IntVar(&cliConfig.Defaults.TimeoutSecs, "timeout", defaultTimeoutSecs, "per-probe timeout in seconds")
	flags.StringSliceVar(&scanOpts.only, "only", nil, "comma separated check ids to run (default all)")
	flags.StringVar(&cliConfig.Defaults.ExportFormat, "format", defaultExportFormat, "export format (json, csv, html, md, pdf)")
	flags.StringVar(&cliConfig.Defaults.OutputDir, "output-dir", "", "directory for exported reports (default <data dir>/reports)")
	flags.BoolVar(&scanOpts.export, "export", false, "write the report to the output directory")
	flags.BoolVar(&scanOpts.progress, "progress", false, "show a live progress line (default on for terminals)")
	flags.Float64Var(&cliConfig.Defaults.ProbeRate, "rate", 0, "maximum checks started per second (0 = unlimited)")
	flags.StringVar(&cliConfig.Defaults.Benchmark, "benchmark", defaultBenchmark, "benchmark label recorded in the report")
	flags.StringVar(&cliConfig.Defaults.HashAlgorithm, "hash", defaultHashAlgorithm, "hash file written next to exports (sha256, sha512, none)")
	flags.StringVar(&scanOpts.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the scan")
	flags.Float64Var(&scanOpts.minScore, "min-score", 0, "exit with status 2 when the score is below this value")
	flags.BoolVar(&scanOpts.watch, "watch", false, "rescan every --interval and report status changes")
	flags.DurationVar(&cliConfig.Watch.Interval, "interval", defaultWatchInterval, "delay between scans in watch mode")
	flags.BoolVar(&cliConfig.Watch.AlertOnChanges, "alert-on-changes", true, "report status changes between consecutive scans")
	flags.IntVar(&scanOpts.count, "count", 0, "stop watch mode after this many scans (0 = until interrupted)")
}
