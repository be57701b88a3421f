package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apicov/internal/compare"
	apierrors "apicov/internal/errors"
	"apicov/internal/report"
)

var (
	reportInput  string
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-render a saved comparison artifact",
	Long: `Render a comparison artifact written by 'apicov compare --out' into another
format without re-running the comparison.

Examples:
  apicov report --input=coverage.json --format=markdown
  apicov report --input=coverage.json --format=badge --out=badge.json
  apicov report --input=coverage.json --format=console`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "Comparison artifact to render (required)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "markdown", "Report format (json, markdown, console, badge)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Write the rendering to a file instead of stdout")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportInput == "" {
		return apierrors.New(apierrors.ConfigInvalid, "--input is required", nil)
	}
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "invalid report format", err)
	}

	data, err := os.ReadFile(reportInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", reportInput, err)
	}
	var result compare.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse %s: %w", reportInput, err)
	}

	var rendered []byte
	switch format {
	case report.FormatJSON:
		rendered, err = report.JSON(&result)
	case report.FormatMarkdown:
		rendered = []byte(report.Markdown(&result))
	case report.FormatConsole:
		rendered = []byte(report.Console(&result))
	case report.FormatBadge:
		rendered, err = report.BadgePayload(&result)
	}
	if err != nil {
		return err
	}

	if reportOut != "" {
		return os.WriteFile(reportOut, rendered, 0644)
	}
	fmt.Print(string(rendered))
	if len(rendered) > 0 && rendered[len(rendered)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
