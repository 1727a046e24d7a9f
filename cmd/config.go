package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/khanhnv2901/seca-host/internal/report"
	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeoutSecs    = 5
	defaultExportFormat   = "json"
	defaultLogLevel       = "info"
	defaultBenchmark      = "CIS"
	defaultHashAlgorithm  = "sha256"
	defaultWatchInterval  = time.Hour
	defaultServeAddr      = "127.0.0.1:8088"
	defaultServeRateLimit = 10
	defaultServeRateBurst = 20
)

// benchmarks are informational labels carried into reports
var benchmarks = []string{"CIS", "NIST_800-53", "NIST_800-171", "SOC2", "Zero Trust"}

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Defaults DefaultValues `yaml:"defaults"`
	Watch    WatchConfig   `yaml:"watch"`
	Serve    ServeConfig   `yaml:"serve"`
}

// DefaultValues represent operator-level defaults, typically derived from env/config.
type DefaultValues struct {
	TimeoutSecs      int     `yaml:"timeout_secs"`
	Shell            string  `yaml:"shell"`
	OutputDir        string  `yaml:"output_dir"`
	ExportFormat     string  `yaml:"export_format"`
	LogLevel         string  `yaml:"log_level"`
	ProbeRate        float64 `yaml:"probe_rate"`
	OSVersionCommand string  `yaml:"os_version_command"`
	Benchmark        string  `yaml:"benchmark"`
	HashAlgorithm    string  `yaml:"hash_algorithm"`
}

// WatchConfig drives repeated scans
type WatchConfig struct {
	Interval       time.Duration `yaml:"interval"`
	AlertOnChanges bool          `yaml:"alert_on_changes"`
}

// ServeConfig holds API server settings
type ServeConfig struct {
	Addr        string   `yaml:"addr"`
	AuthToken   string   `yaml:"auth_token"`
	RateLimit   int      `yaml:"rate_limit"`
	RateBurst   int      `yaml:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins"`
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Defaults: DefaultValues{
			TimeoutSecs:   defaultTimeoutSecs,
			Shell:         consts.DefaultShell,
			ExportFormat:  defaultExportFormat,
			LogLevel:      defaultLogLevel,
			Benchmark:     defaultBenchmark,
			HashAlgorithm: defaultHashAlgorithm,
		},
		Watch: WatchConfig{
			Interval:       defaultWatchInterval,
			AlertOnChanges: true,
		},
		Serve: ServeConfig{
			Addr:      defaultServeAddr,
			RateLimit: defaultServeRateLimit,
			RateBurst: defaultServeRateBurst,
		},
	}
}

// resetCLIConfig restores defaults in place; flags stay bound to the same fields
func resetCLIConfig() {
	*cliConfig = *newCLIConfig()
}

// applyConfigDefaults merges config file and environment values into the
// runtime config when the user did not explicitly set the corresponding flag.
func applyConfigDefaults() {
	scanFlags := scanCmd.Flags()
	serveFlags := serveCmd.Flags()
	rootFlags := rootCmd.PersistentFlags()

	if viper.IsSet("defaults.timeout_secs") {
		applyDefault(scanFlags, "timeout", viper.GetInt("defaults.timeout_secs"), func(v int) {
			cliConfig.Defaults.TimeoutSecs = v
		})
	}
	if viper.IsSet("defaults.shell") {
		cliConfig.Defaults.Shell = viper.GetString("defaults.shell")
	}
	if viper.IsSet("defaults.output_dir") {
		applyDefault(scanFlags, "output-dir", viper.GetString("defaults.output_dir"), func(v string) {
			cliConfig.Defaults.OutputDir = v
		})
	}
	if viper.IsSet("defaults.export_format") {
		applyDefault(scanFlags, "format", viper.GetString("defaults.export_format"), func(v string) {
			cliConfig.Defaults.ExportFormat = v
		})
	}
	if viper.IsSet("defaults.log_level") {
		applyDefault(rootFlags, "log-level", viper.GetString("defaults.log_level"), func(v string) {
			cliConfig.Defaults.LogLevel = v
		})
	}
	if viper.IsSet("defaults.probe_rate") {
		applyDefault(scanFlags, "rate", viper.GetFloat64("defaults.probe_rate"), func(v float64) {
			cliConfig.Defaults.ProbeRate = v
		})
	}
	if viper.IsSet("defaults.os_version_command") {
		cliConfig.Defaults.OSVersionCommand = viper.GetString("defaults.os_version_command")
	}
	if viper.IsSet("defaults.benchmark") {
		applyDefault(scanFlags, "benchmark", viper.GetString("defaults.benchmark"), func(v string) {
			cliConfig.Defaults.Benchmark = v
		})
	}
	if viper.IsSet("defaults.hash_algorithm") {
		applyDefault(scanFlags, "hash", viper.GetString("defaults.hash_algorithm"), func(v string) {
			cliConfig.Defaults.HashAlgorithm = v
		})
	}

	if viper.IsSet("watch.interval") {
		applyDefault(scanFlags, "interval", viper.GetDuration("watch.interval"), func(v time.Duration) {
			cliConfig.Watch.Interval = v
		})
	}
	if viper.IsSet("watch.alert_on_changes") {
		applyDefault(scanFlags, "alert-on-changes", viper.GetBool("watch.alert_on_changes"), func(v bool) {
			cliConfig.Watch.AlertOnChanges = v
		})
	}

	if viper.IsSet("serve.addr") {
		applyDefault(serveFlags, "addr", viper.GetString("serve.addr"), func(v string) {
			cliConfig.Serve.Addr = v
		})
	}
	if viper.IsSet("serve.auth_token") {
		applyDefault(serveFlags, "auth-token", viper.GetString("serve.auth_token"), func(v string) {
			cliConfig.Serve.AuthToken = v
		})
	}
	if viper.IsSet("serve.rate_limit") {
		applyDefault(serveFlags, "rate-limit", viper.GetInt("serve.rate_limit"), func(v int) {
			cliConfig.Serve.RateLimit = v
		})
	}
	if viper.IsSet("serve.rate_burst") {
		applyDefault(serveFlags, "rate-burst", viper.GetInt("serve.rate_burst"), func(v int) {
			cliConfig.Serve.RateBurst = v
		})
	}
	if viper.IsSet("serve.cors_origins") {
		applyDefault(serveFlags, "cors-origins", viper.GetStringSlice("serve.cors_origins"), func(v []string) {
			cliConfig.Serve.CORSOrigins = v
		})
	}
}

// applyDefault calls setter unless the named flag was set on the command line
func applyDefault[T any](flags *pflag.FlagSet, name string, value T, setter func(T)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

// validate rejects settings no command can run with
func (c *CLIConfig) validate() error {
	if c.Defaults.TimeoutSecs <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.Defaults.TimeoutSecs)
	}
	if c.Defaults.ProbeRate < 0 {
		return fmt.Errorf("probe rate must not be negative, got %g", c.Defaults.ProbeRate)
	}
	if _, err := report.ParseFormat(c.Defaults.ExportFormat); err != nil {
		return err
	}
	benchmark, err := normalizeBenchmark(c.Defaults.Benchmark)
	if err != nil {
		return err
	}
	c.Defaults.Benchmark = benchmark
	if hashEnabled(c.Defaults.HashAlgorithm) && !slices.Contains(report.HashAlgorithms, c.Defaults.HashAlgorithm) {
		return fmt.Errorf("%w: %q", sharedErrors.ErrInvalidHashAlgorithm, c.Defaults.HashAlgorithm)
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", c.Watch.Interval)
	}
	return nil
}

func normalizeBenchmark(name string) (string, error) {
	for _, b := range benchmarks {
		if strings.EqualFold(b, strings.TrimSpace(name)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown benchmark %q (supported: %s)", name, strings.Join(benchmarks, ", "))
}

// hashEnabled reports whether exports get a companion hash file
func hashEnabled(algorithm string) bool {
	return algorithm != "" && algorithm != "none"
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect seca-host configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		out := cmd.OutOrStdout()

		effective := *appCtx.Config
		effective.Defaults.OutputDir = appCtx.ReportsDir
		if effective.Serve.AuthToken != "" {
			effective.Serve.AuthToken = "********"
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "# config file: %s\n", used)
		} else {
			fmt.Fprintln(out, "# config file: none (using defaults)")
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(effective); err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
