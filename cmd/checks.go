package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/evaluator"
	"github.com/khanhnv2901/seca-host/internal/registry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Browse the check catalogue",
}

var checksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the checks in scan order",
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryName, _ := cmd.Flags().GetString("category")
		output, _ := cmd.Flags().GetString("output")

		reg := registry.Default()
		defs := reg.All()
		if categoryName != "" {
			category, err := check.ParseCategory(categoryName)
			if err != nil {
				return err
			}
			defs = reg.InCategory(category)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(output) {
		case "", "table":
			return writeChecksTable(out, defs)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(defs)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(defs); err != nil {
				return fmt.Errorf("failed to encode checks: %w", err)
			}
			return enc.Close()
		default:
			return fmt.Errorf("unsupported output %q (use table, json or yaml)", output)
		}
	},
}

var checksShowCmd = &cobra.Command{
	Use:   "show <check-id>",
	Short: "Show one check with its hint and remediation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := registry.Default().ByID(args[0])
		if err != nil {
			var notFound *registry.NotFoundError
			if errors.As(err, &notFound) {
				return &CheckNotFoundError{ID: notFound.ID}
			}
			return err
		}

		implemented := "yes"
		if !evaluator.New(nil).HasRule(def.ID) {
			implemented = "no (always reported as a warning)"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, colorInfo(def.Name))
		fmt.Fprintf(out, "  ID:          %s\n", def.ID)
		fmt.Fprintf(out, "  Category:    %s\n", def.Category)
		fmt.Fprintf(out, "  Severity:    %d/%d\n", def.Severity, check.MaxSeverity)
		fmt.Fprintf(out, "  Enforceable: %t\n", def.Enforceable)
		fmt.Fprintf(out, "  Implemented: %s\n", implemented)
		fmt.Fprintf(out, "  Description: %s\n", def.Description)
		if def.Hint != "" {
			fmt.Fprintf(out, "  Hint:        %s\n", def.Hint)
		}
		if def.HasRemediation() {
			fmt.Fprintf(out, "  Remediation: %s\n", def.Remediation)
		}
		if len(def.APIs) > 0 {
			fmt.Fprintf(out, "  APIs:        %s\n", strings.Join(def.APIs, ", "))
		}
		return nil
	},
}

func writeChecksTable(out io.Writer, defs []check.Definition) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSEVERITY")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", def.ID, def.Name, def.Category, def.Severity)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d checks\n", len(defs))
	return nil
}

func init() {
	checksListCmd.Flags().String("category", "", "only list checks in this category")
	checksListCmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	checksCmd.AddCommand(checksListCmd)
	checksCmd.AddCommand(checksShowCmd)
}
