package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apicov/internal/annotations"
	"apicov/internal/catalog"
	"apicov/internal/compare"
	"apicov/internal/coverage"
	apierrors "apicov/internal/errors"
	"apicov/internal/report"
)

var (
	combineReferenceTypes string
	combinePolyfillTypes  string
	combineStrict         bool
	combineTestResults    string
	combineAnnotations    string
	combineFormat         string
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Produce final per-API coverage from all three tiers",
	Long: `Run a comparison, then merge it with runtime test results (tier 2) and
annotation caps (tier 3) into one completeness number and status per API.
Later tiers can only lower a score, never raise it.

Examples:
  apicov combine --reference-types types/ --polyfill-types dist/index.d.ts
  apicov combine --test-results test-results.json --annotations annotations.json
  apicov combine --format=json`,
	RunE: runCombine,
}

func init() {
	combineCmd.Flags().StringVar(&combineReferenceTypes, "reference-types", "", "Directory of reference .d.ts files")
	combineCmd.Flags().StringVar(&combinePolyfillTypes, "polyfill-types", "", "Polyfill declaration file")
	combineCmd.Flags().BoolVar(&combineStrict, "strict-signatures", false, "Classify compatible widenings as partial")
	combineCmd.Flags().StringVar(&combineTestResults, "test-results", "", "Runtime test-results JSON file (tier 2)")
	combineCmd.Flags().StringVar(&combineAnnotations, "annotations", "", "Annotation JSON file (tier 3)")
	combineCmd.Flags().StringVar(&combineFormat, "format", "human", "Output format (json, human)")

	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, args []string) error {
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
		ReferenceDeclDir: pick(combineReferenceTypes, manifestReferenceTypes(manifest), cfg.Compare.ReferenceTypes),
		PolyfillDeclPath: pick(combinePolyfillTypes, manifestPolyfillTypes(manifest), cfg.Compare.PolyfillTypes),
		StrictSignatures: cfg.Compare.StrictSignatures,
	}
	if manifest != nil {
		opts.StrictSignatures = manifest.StrictSignatures
	}
	if cmd.Flags().Changed("strict-signatures") {
		opts.StrictSignatures = combineStrict
	}

	engine := compare.NewEngine(opts, logger)
	result, err := engine.Compare(cmd.Context())
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "comparison could not start", err)
	}

	cat, err := catalog.Extract(cmd.Context(), opts.ReferenceDeclDir, logger)
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "catalog extraction could not start", err)
	}

	testsPath := pick(combineTestResults, manifestTestResults(manifest))
	var tests map[string]coverage.TestResults
	if testsPath != "" {
		tests = coverage.LoadTestResults(testsPath, logger)
	}

	annotationsPath := pick(combineAnnotations, manifestAnnotations(manifest))
	store := annotations.Empty()
	if annotationsPath != "" {
		store = annotations.Load(annotationsPath, logger)
	}

	records := coverage.Combine(result, cat.FullPaths(), tests, store)

	switch OutputFormat(combineFormat) {
	case FormatJSON:
		data, err := report.CombinedJSON(records)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case FormatHuman:
		fmt.Print(report.CombinedConsole(records))
	default:
		return fmt.Errorf("unsupported format: %s", combineFormat)
	}
	return nil
}
