package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/report"
	"github.com/keywarden/cli/internal/report/pdf"
)

var (
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a credential report",
	Long: `Render a report over all tracked credentials.

Formats: text (default), json, markdown, pdf. Text, JSON and Markdown
go to stdout unless --output is given; PDF always needs --output.

Examples:
  keywarden report
  keywarden report --format markdown --output report.md
  keywarden report --format pdf --output report.pdf`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", report.FormatText, "Output format: text, json, markdown, pdf")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	reg, _, err := openRegistry(cmd)
	if err != nil {
		return commandError(cmd, err)
	}
	records := reg.List()
	now := time.Now()

	format := strings.ToLower(reportFormat)
	if format == "pdf" {
		if reportOutput == "" {
			return commandError(cmd, fmt.Errorf("the pdf format requires --output"))
		}
		f, err := os.Create(reportOutput)
		if err != nil {
			return commandError(cmd, fmt.Errorf("failed to create %s: %w", reportOutput, err))
		}
		defer f.Close()
		if err := pdf.Write(f, records, now); err != nil {
			return commandError(cmd, err)
		}
		if !quietMode(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote PDF report to %s\n", reportOutput)
		}
		return nil
	}

	if !report.ValidFormat(format) {
		return commandError(cmd, fmt.Errorf("unknown report format %q: expected text, json, markdown or pdf", reportFormat))
	}

	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			return commandError(cmd, fmt.Errorf("failed to create %s: %w", reportOutput, err))
		}
		defer f.Close()
		if err := report.Write(f, records, format, now); err != nil {
			return commandError(cmd, err)
		}
		if !quietMode(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", format, reportOutput)
		}
		return nil
	}

	return report.Write(cmd.OutOrStdout(), records, format, now)
}
