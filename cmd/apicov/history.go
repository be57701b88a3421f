package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apierrors "apicov/internal/errors"
	"apicov/internal/output"
	"apicov/internal/report"
	"apicov/internal/storage"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved comparison runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list (0 for all)")
	historyListCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, human)")
	historyShowCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, human)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openStore() (*storage.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, apierrors.New(apierrors.ConfigInvalid, "failed to load configuration", err)
	}
	db, err := storage.Open(projectRoot(), newLogger(cfg))
	if err != nil {
		return nil, apierrors.New(apierrors.StoreUnavailable, "run history unavailable", err)
	}
	return db, nil
}

// historyListCLI wraps run summaries for CLI rendering.
type historyListCLI struct {
	Runs []storage.RunSummary `json:"runs"`
}

func (r historyListCLI) renderHuman() string {
	if len(r.Runs) == 0 {
		return "No saved runs.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d saved runs:\n\n", len(r.Runs))
	for _, run := range r.Runs {
		strict := ""
		if run.Strict {
			strict = " strict"
		}
		fmt.Fprintf(&b, "%s  %s  %s%s\n", run.ID, run.CreatedAt,
			output.FormatPercent(run.PercentComplete), strict)
		fmt.Fprintf(&b, "    %s vs %s (%d/%d covered, %d partial, %d missing)\n",
			run.ReferencePath, run.PolyfillPath,
			run.Covered, run.Total, run.Partial, run.Missing)
	}
	return b.String()
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}

	out, err := FormatResponse(historyListCLI{Runs: runs}, OutputFormat(historyFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.GetRun(args[0])
	if err != nil {
		return err
	}

	switch OutputFormat(historyFormat) {
	case FormatJSON:
		data, err := report.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case FormatHuman:
		fmt.Print(report.Console(result))
	default:
		return fmt.Errorf("unsupported format: %s", historyFormat)
	}
	return nil
}
