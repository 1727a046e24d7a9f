package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/khanhnv2901/seca-host/internal/evaluator"
	"github.com/khanhnv2901/seca-host/internal/registry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system information and data directory paths",
	Long: `Display seca-host configuration information including:
  - Data and report directory locations
  - Configuration file path
  - Catalogue coverage
  - Platform information`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)

		dataDir, err := getDataDir()
		if err != nil {
			return fmt.Errorf("failed to get data directory: %w", err)
		}

		reportsExists := "✗ (not created yet)"
		if _, err := os.Stat(appCtx.ReportsDir); err == nil {
			reportsExists = "✓ (exists)"
		}

		configPath := viper.ConfigFileUsed()
		configExists := "✓ (loaded)"
		if configPath == "" {
			configPath = configFilePath()
			configExists = "✗ (using defaults)"
		}

		reg := registry.Default()
		implemented := len(evaluator.New(nil).Implemented())

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "seca-host System Information")
		fmt.Fprintln(out, "============================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Platform:          %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Version:           %s\n", Version)
		fmt.Fprintf(out, "Probe Shell:       %s\n", appCtx.Config.Defaults.Shell)
		fmt.Fprintf(out, "Probe Timeout:     %ds\n", appCtx.Config.Defaults.TimeoutSecs)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Data Locations:")
		fmt.Fprintf(out, "  Data Directory:     %s\n", dataDir)
		fmt.Fprintf(out, "  Reports Directory:  %s %s\n", appCtx.ReportsDir, reportsExists)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Configuration File:   %s %s\n", configPath, configExists)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Catalogue:")
		fmt.Fprintf(out, "  Checks:       %d in %d categories\n", reg.Len(), len(reg.Categories()))
		fmt.Fprintf(out, "  Implemented:  %d (the rest report a warning)\n", implemented)
		if runtime.GOOS != "darwin" {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s Probes target macOS; on this platform most checks will fail or warn.\n", colorWarn("!"))
		}
		return nil
	},
}
