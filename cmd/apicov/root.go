package main

import (
	"os"

	"github.com/spf13/cobra"

	"apicov/internal/config"
	"apicov/internal/logging"
	"apicov/internal/version"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "apicov",
	Short: "apicov - polyfill API coverage tracker",
	Long: `apicov measures how completely a polyfill implements a reference API surface.
It compares TypeScript declaration files semantically, combines the result with
runtime test data and human annotations, and renders coverage reports.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("apicov version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default: human)")
}

// newLogger builds the run logger from flags, falling back to config defaults.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}

	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}

	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.ParseLevel(level),
	})
}

// projectRoot is the directory apicov resolves config, manifest, and store
// paths against.
func projectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// loadConfig loads .apicov/config.json from the project root. Invalid config
// is the one fatal input, so errors propagate.
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(projectRoot())
}

// loadManifest loads apicov.yml from the project root if present.
func loadManifest() (*config.Manifest, error) {
	return config.LoadManifest(projectRoot() + "/apicov.yml")
}

// pick returns the first non-empty value, so flags override the manifest and
// the manifest overrides config defaults.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Manifest accessors tolerating a missing apicov.yml.

func manifestReferenceTypes(m *config.Manifest) string {
	if m == nil {
		return ""
	}
	return m.ReferenceTypes
}

func manifestPolyfillTypes(m *config.Manifest) string {
	if m == nil {
		return ""
	}
	return m.PolyfillTypes
}

func manifestTestResults(m *config.Manifest) string {
	if m == nil {
		return ""
	}
	return m.TestResults
}

func manifestAnnotations(m *config.Manifest) string {
	if m == nil {
		return ""
	}
	return m.Annotations
}
