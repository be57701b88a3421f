package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if !cfg.Store.Enabled {
		t.Error("Store.Enabled should default to true")
	}
	if cfg.Compare.StrictSignatures {
		t.Error("StrictSignatures should default to false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".apicov"), 0755); err != nil {
		t.Fatal(err)
	}

	content := `{
  "version": 1,
  "compare": {"referenceTypes": "decl", "strictSignatures": true},
  "logging": {"level": "debug"}
}`
	if err := os.WriteFile(filepath.Join(dir, ".apicov", "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Compare.ReferenceTypes != "decl" {
		t.Errorf("ReferenceTypes = %q, want decl", cfg.Compare.ReferenceTypes)
	}
	if !cfg.Compare.StrictSignatures {
		t.Error("StrictSignatures should be true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults
	if cfg.Store.Path != ".apicov/apicov.db" {
		t.Errorf("Store.Path = %q, want default", cfg.Store.Path)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Compare.PolyfillTypes = "out/poly.d.ts"

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Compare.PolyfillTypes != "out/poly.d.ts" {
		t.Errorf("PolyfillTypes = %q after round trip", loaded.Compare.PolyfillTypes)
	}
}
