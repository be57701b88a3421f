package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a polyfill project for apicov (apicov.yml at the project
// root). It names the inputs a comparison run needs so the CLI can run
// flag-less inside the repo being measured.
type Manifest struct {
	// Name of the polyfill project, used as the badge label
	Name string `yaml:"name"`
	// ReferenceTypes is the directory holding the reference .d.ts files
	ReferenceTypes string `yaml:"referenceTypes"`
	// PolyfillTypes is the polyfill's own declaration file
	PolyfillTypes string `yaml:"polyfillTypes"`
	// Annotations is the path to the human-maintained annotation file
	Annotations string `yaml:"annotations"`
	// TestResults is the path to the runtime test-results file (tier 2)
	TestResults string `yaml:"testResults"`
	// StrictSignatures classifies compatible widenings as partial
	StrictSignatures bool `yaml:"strictSignatures"`
	// Report lists output artifacts to write after a comparison
	Report ReportTargets `yaml:"report"`
}

// ReportTargets names the report artifacts a run writes.
type ReportTargets struct {
	JSON     string `yaml:"json"`
	Markdown string `yaml:"markdown"`
	Badge    string `yaml:"badge"`
}

// LoadManifest reads apicov.yml from the given path. A missing file is not an
// error; it returns (nil, nil) so callers fall back to flags and config.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
