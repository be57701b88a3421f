// Package annotations loads the human-maintained override file: per-API
// notes, completeness caps, and native-runtime flags. Annotations can only
// ever reduce a score the engine produced, never raise it.
package annotations

import (
	"encoding/json"
	"os"

	"apicov/internal/logging"
)

// Annotation is a human override keyed by an API's full path.
type Annotation struct {
	FullPath        string   `json:"fullPath"`
	Notes           string   `json:"notes,omitempty"`
	MaxCompleteness *int     `json:"maxCompleteness,omitempty"`
	Limitations     []string `json:"limitations,omitempty"`
	// RequiresNativeRuntime forces completeness to 0 regardless of other tiers
	RequiresNativeRuntime bool   `json:"requiresNativeRuntime,omitempty"`
	RequiresNativeReason  string `json:"requiresNativeReason,omitempty"`
}

// Store holds loaded annotations keyed by full path.
type Store struct {
	byPath map[string]Annotation
}

// Empty returns a store with no annotations.
func Empty() *Store {
	return &Store{byPath: map[string]Annotation{}}
}

// Load reads an annotation file. A missing file, malformed JSON, or a
// non-array top level all degrade to an empty store: coverage reporting must
// stay useful with partial inputs.
func Load(path string, logger *logging.Logger) *Store {
	store := Empty()
	if path == "" {
		return store
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil && !os.IsNotExist(err) {
			logger.Warn("Could not read annotation file", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return store
	}

	var entries []Annotation
	if err := json.Unmarshal(data, &entries); err != nil {
		if logger != nil {
			logger.Warn("Malformed annotation file, treating as empty", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return store
	}

	for _, entry := range entries {
		if entry.FullPath == "" {
			continue
		}
		if entry.MaxCompleteness != nil {
			clamped := clamp(*entry.MaxCompleteness, 0, 100)
			entry.MaxCompleteness = &clamped
		}
		store.byPath[entry.FullPath] = entry
	}

	return store
}

// Put adds or replaces an annotation, clamping its cap like Load does.
func (s *Store) Put(a Annotation) {
	if a.FullPath == "" {
		return
	}
	if a.MaxCompleteness != nil {
		clamped := clamp(*a.MaxCompleteness, 0, 100)
		a.MaxCompleteness = &clamped
	}
	s.byPath[a.FullPath] = a
}

// Get returns the annotation for a full path.
func (s *Store) Get(fullPath string) (Annotation, bool) {
	a, ok := s.byPath[fullPath]
	return a, ok
}

// Len returns the number of loaded annotations.
func (s *Store) Len() int {
	return len(s.byPath)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
