package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"apicov/internal/compare"
	"apicov/internal/config"
	apierrors "apicov/internal/errors"
	"apicov/internal/logging"
	"apicov/internal/report"
	"apicov/internal/storage"
)

var (
	compareReferenceTypes string
	comparePolyfillTypes  string
	compareStrict         bool
	compareFormat         string
	compareOut            string
	compareNoStore        bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare reference declarations against a polyfill",
	Long: `Compare the reference API declarations against the polyfill's declaration
file and classify every member as covered, partial, or missing.

Inputs resolve from flags first, then apicov.yml, then .apicov/config.json.

Examples:
  apicov compare --reference-types types/ --polyfill-types dist/index.d.ts
  apicov compare --strict-signatures
  apicov compare --format=json --out=coverage.json
  apicov compare --no-store`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareReferenceTypes, "reference-types", "", "Directory of reference .d.ts files")
	compareCmd.Flags().StringVar(&comparePolyfillTypes, "polyfill-types", "", "Polyfill declaration file")
	compareCmd.Flags().BoolVar(&compareStrict, "strict-signatures", false, "Classify compatible widenings as partial")
	compareCmd.Flags().StringVar(&compareFormat, "format", "human", "Output format (json, human)")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "Write the JSON comparison artifact to a file")
	compareCmd.Flags().BoolVar(&compareNoStore, "no-store", false, "Skip run-history persistence")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "failed to load configuration", err)
	}
	manifest, err := loadManifest()
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "failed to load apicov.yml", err)
	}
	logger := newLogger(cfg)

	opts := compare.Options{
		StrictSignatures: cfg.Compare.StrictSignatures,
	}
	if manifest != nil {
		opts.ReferenceDeclDir = manifest.ReferenceTypes
		opts.PolyfillDeclPath = manifest.PolyfillTypes
		opts.StrictSignatures = manifest.StrictSignatures
	}
	opts.ReferenceDeclDir = pick(compareReferenceTypes, opts.ReferenceDeclDir, cfg.Compare.ReferenceTypes)
	opts.PolyfillDeclPath = pick(comparePolyfillTypes, opts.PolyfillDeclPath, cfg.Compare.PolyfillTypes)
	if cmd.Flags().Changed("strict-signatures") {
		opts.StrictSignatures = compareStrict
	}

	engine := compare.NewEngine(opts, logger)
	result, err := engine.Compare(cmd.Context())
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "comparison could not start", err)
	}

	if compareOut != "" {
		artifact, err := report.JSON(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(compareOut, artifact, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", compareOut, err)
		}
	}
	if manifest != nil {
		if err := writeManifestReports(manifest, result); err != nil {
			return err
		}
	}

	switch OutputFormat(compareFormat) {
	case FormatJSON:
		artifact, err := report.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(string(artifact))
	case FormatHuman:
		fmt.Print(report.Console(result))
	default:
		return fmt.Errorf("unsupported format: %s", compareFormat)
	}

	if !compareNoStore && cfg.Store.Enabled {
		saveRun(result, logger)
	}

	logger.Debug("Comparison completed", logging.Fields{
		"interfaces": len(result.Interfaces),
		"warnings":   len(result.Warnings),
		"duration":   time.Since(start).Milliseconds(),
	})

	// Warnings are part of the report, not a failure of the run.
	return nil
}

// saveRun persists the run to history. Store failures degrade to a log line;
// the comparison already succeeded.
func saveRun(result *compare.Result, logger *logging.Logger) {
	db, err := storage.Open(projectRoot(), logger)
	if err != nil {
		storeErr := apierrors.New(apierrors.StoreUnavailable, "run history unavailable", err)
		logger.Warn(storeErr.Message, logging.Fields{"error": err.Error()})
		return
	}
	defer db.Close()

	id, err := db.SaveRun(result)
	if err != nil {
		logger.Warn("Failed to save run history", logging.Fields{"error": err.Error()})
		return
	}
	logger.Debug("Saved comparison run", logging.Fields{"runId": id})
}

// writeManifestReports writes the report artifacts apicov.yml asks for.
func writeManifestReports(manifest *config.Manifest, result *compare.Result) error {
	jsonPath := manifest.Report.JSON
	markdownPath := manifest.Report.Markdown
	badgePath := manifest.Report.Badge

	if jsonPath != "" {
		data, err := report.JSON(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", jsonPath, err)
		}
	}
	if markdownPath != "" {
		if err := os.WriteFile(markdownPath, []byte(report.Markdown(result)), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", markdownPath, err)
		}
	}
	if badgePath != "" {
		data, err := report.BadgePayload(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(badgePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", badgePath, err)
		}
	}
	return nil
}
