package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khanhnv2901/seca-host/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with exported reports",
}

var reportConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Re-render an exported JSON report in another format",
	Example: `  seca-host report convert --input Security_Report_2024-05-06_07-08-09.json --format html
  seca-host report convert --input last.json --format pdf --output weekly/posture.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		input, _ := cmd.Flags().GetString("input")
		formatName, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		dir, _ := cmd.Flags().GetString("dir")

		if strings.TrimSpace(input) == "" {
			return errors.New("--input is required")
		}
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		rep, err := report.Load(input)
		if err != nil {
			return err
		}

		if dir == "" {
			dir = appCtx.ReportsDir
		}
		if output == "" {
			output = report.FileName(rep, format)
		}
		path, err := report.WriteAs(dir, output, rep, format)
		if err != nil {
			return fmt.Errorf("failed to convert report: %w", err)
		}

		if algorithm := appCtx.Config.Defaults.HashAlgorithm; hashEnabled(algorithm) {
			if _, err := report.Seal(path, algorithm); err != nil {
				return err
			}
		}

		appCtx.Logger.Infow("report converted",
			"input", input,
			"output", path,
			"format", string(format),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s report written to %s (score %.0f%%)\n",
			colorSuccess("✓"), strings.ToUpper(string(format)), path, rep.Score())
		return nil
	},
}

var reportVerifyCmd = &cobra.Command{
	Use:   "verify <report-file>...",
	Short: "Check exported reports against their .sha256 or .sha512 files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			algorithm, err := report.Verify(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s %s: %v\n", colorError("✗"), path, err)
				continue
			}
			fmt.Fprintf(out, "%s %s: OK (%s)\n", colorSuccess("✓"), path, algorithm)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d report(s) failed verification", failed, len(args))
		}
		return nil
	},
}

var reportFormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported export formats",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, f := range report.Formats() {
			fmt.Fprintf(out, "%-5s %-28s %s\n", f, f.ContentType(), "*"+f.Extension())
		}
	},
}

func init() {
	reportConvertCmd.Flags().StringP("input", "i", "", "exported JSON report to read")
	reportConvertCmd.Flags().StringP("format", "f", "html", "target format (json, csv, html, md, pdf)")
	reportConvertCmd.Flags().String("output", "", "file name inside the output directory (default Security_Report_<timestamp>.<ext>)")
	reportConvertCmd.Flags().String("dir", "", "output directory (default the configured reports directory)")
	reportCmd.AddCommand(reportConvertCmd)
	reportCmd.AddCommand(reportVerifyCmd)
	reportCmd.AddCommand(reportFormatsCmd)
}
