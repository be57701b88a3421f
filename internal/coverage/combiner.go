// Package coverage merges the three coverage tiers into one authoritative
// per-API record: tier 1 is the engine's type comparison, tier 2 is optional
// runtime test results, tier 3 is human annotation caps. Each tier can only
// reduce a score an earlier tier established, never raise it.
package coverage

import (
	"math"

	"apicov/internal/annotations"
	"apicov/internal/compare"
)

// Status is the final per-API coverage status after all tiers.
type Status string

const (
	// StatusCovered means the API is essentially complete (>= 90)
	StatusCovered Status = "covered"
	// StatusPartial means meaningful but incomplete coverage (30-89)
	StatusPartial Status = "partial"
	// StatusStub means the API exists but is functionally incomplete (1-29)
	StatusStub Status = "stub"
	// StatusMissing means no usable coverage (0)
	StatusMissing Status = "missing"
)

// Influence names a tier that lowered the final completeness.
const (
	InfluenceTests      = "reduced by tests"
	InfluenceAnnotation = "capped by annotation"
	InfluenceNative     = "requires native runtime"
)

// Combined is the final per-API coverage record.
type Combined struct {
	FullPath       string                  `json:"fullPath"`
	Tier1Status    compare.Status          `json:"tier1Status"`
	SignatureMatch bool                    `json:"signatureMatch"`
	TestResults    *TestResults            `json:"testResults,omitempty"`
	Annotation     *annotations.Annotation `json:"annotation,omitempty"`
	Completeness   int                     `json:"completeness"`
	Status         Status                  `json:"status"`
	Influences     []string                `json:"influences,omitempty"`
}

// Combine merges the engine's result with optional tier-2 test results and
// tier-3 annotations. catalogPaths lists every full path the extractor knows;
// paths the engine never touched default to missing/0 so the final report is
// never silently incomplete.
func Combine(result *compare.Result, catalogPaths []string, tests map[string]TestResults, store *annotations.Store) []Combined {
	if store == nil {
		store = annotations.Empty()
	}

	var combined []Combined
	seen := map[string]bool{}

	if result != nil {
		for _, iface := range result.Interfaces {
			for _, member := range iface.Members {
				combined = append(combined, combineMember(member, tests, store))
				seen[member.FullPath] = true
			}
		}
	}

	for _, path := range catalogPaths {
		if seen[path] {
			continue
		}
		seen[path] = true
		combined = append(combined, combineMember(compare.MemberComparison{
			FullPath: path,
			Status:   compare.StatusMissing,
		}, tests, store))
	}

	return combined
}

func combineMember(member compare.MemberComparison, tests map[string]TestResults, store *annotations.Store) Combined {
	c := Combined{
		FullPath:       member.FullPath,
		Tier1Status:    member.Status,
		SignatureMatch: member.SignatureMatch,
	}

	// Tier 1: seed from the comparison status. Covered without an exact
	// signature match seeds slightly lower.
	switch member.Status {
	case compare.StatusCovered:
		if member.SignatureMatch {
			c.Completeness = 100
		} else {
			c.Completeness = 90
		}
	case compare.StatusPartial:
		c.Completeness = 50
	default:
		c.Completeness = 0
	}

	// Tier 2: runtime tests can only lower the score.
	if results, ok := tests[member.FullPath]; ok && results.Executed() > 0 {
		r := results
		c.TestResults = &r
		p := int(math.Round(r.passRate()))
		if p < c.Completeness {
			c.Completeness = p
			c.Influences = append(c.Influences, InfluenceTests)
		}
	}

	// Tier 3: annotation caps clamp down.
	if annotation, ok := store.Get(member.FullPath); ok {
		a := annotation
		c.Annotation = &a
		if a.MaxCompleteness != nil && *a.MaxCompleteness < c.Completeness {
			c.Completeness = *a.MaxCompleteness
			c.Influences = append(c.Influences, InfluenceAnnotation)
		}
	}

	c.Status = StatusFromCompleteness(c.Completeness)

	// The native-runtime flag overrides every tier unconditionally.
	if c.Annotation != nil && c.Annotation.RequiresNativeRuntime {
		c.Completeness = 0
		c.Status = StatusMissing
		c.Influences = append(c.Influences, InfluenceNative)
	}

	return c
}

// StatusFromCompleteness maps a completeness score to its status band.
func StatusFromCompleteness(completeness int) Status {
	switch {
	case completeness >= 90:
		return StatusCovered
	case completeness >= 30:
		return StatusPartial
	case completeness >= 1:
		return StatusStub
	default:
		return StatusMissing
	}
}
