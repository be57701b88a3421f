package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apicov/internal/catalog"
	apierrors "apicov/internal/errors"
	"apicov/internal/ifacemap"
)

var (
	catalogReferenceTypes string
	catalogFormat         string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Extract the reference API catalog",
	Long: `Walk the reference declaration directory and list every declared API with
its kind, category, and signature.

Examples:
  apicov catalog --reference-types types/
  apicov catalog --format=json`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogReferenceTypes, "reference-types", "", "Directory of reference .d.ts files")
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "human", "Output format (json, human)")

	rootCmd.AddCommand(catalogCmd)
}

// catalogResponseCLI wraps the catalog for CLI rendering.
type catalogResponseCLI struct {
	*catalog.Catalog
}

func (r catalogResponseCLI) renderHuman() string {
	var b strings.Builder
	fmt.Fprintf(&b, "API catalog (%d top-level declarations)\n\n", len(r.Entries))
	for _, entry := range r.Entries {
		fmt.Fprintf(&b, "%s [%s, %s] %s\n", entry.FullPath, entry.Kind, entry.Category, mappingStatus(entry.Name))
		for _, child := range entry.Children {
			line := fmt.Sprintf("  %s [%s]", child.FullPath, child.Kind)
			if child.Signature != "" {
				line += ": " + child.Signature
			}
			b.WriteString(line + "\n")
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}

// mappingStatus describes how the interface map handles a reference name.
func mappingStatus(name string) string {
	if m, ok := ifacemap.Lookup(name); ok {
		if m.Polyfill == "" {
			return "-> (null-mapped)"
		}
		return "-> " + m.Polyfill
	}
	if entry, ok := ifacemap.Skipped(name); ok {
		return "skipped: " + entry.Reason
	}
	return "(unmapped)"
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "failed to load configuration", err)
	}
	manifest, err := loadManifest()
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "failed to load apicov.yml", err)
	}
	logger := newLogger(cfg)

	refDir := pick(catalogReferenceTypes, manifestReferenceTypes(manifest), cfg.Compare.ReferenceTypes)
	cat, err := catalog.Extract(cmd.Context(), refDir, logger)
	if err != nil {
		return apierrors.New(apierrors.ConfigInvalid, "catalog extraction could not start", err)
	}

	out, err := FormatResponse(catalogResponseCLI{cat}, OutputFormat(catalogFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
