package coverage

import (
	"encoding/json"
	"os"

	"apicov/internal/logging"
	"apicov/internal/output"
)

// TestResults is the tier-2 runtime test outcome for one API. It is produced
// by an external test runner and treated as untrusted, already-finalized
// input: values are clamped on load and never recomputed.
type TestResults struct {
	Total          int     `json:"total"`
	Passed         int     `json:"passed"`
	Failed         int     `json:"failed"`
	Skipped        int     `json:"skipped"`
	PercentPassing float64 `json:"percentPassing"`
}

// Executed returns the number of non-skipped tests.
func (r TestResults) Executed() int {
	executed := r.Total - r.Skipped
	if executed < 0 {
		return 0
	}
	return executed
}

// passRate derives the passing percentage among executed tests from the raw
// counts, ignoring the file's own PercentPassing field.
func (r TestResults) passRate() float64 {
	executed := r.Executed()
	if executed == 0 {
		return 0
	}
	rate := float64(r.Passed) / float64(executed) * 100
	if rate > 100 {
		rate = 100
	}
	return output.SafeFloat(rate)
}

// LoadTestResults reads a tier-2 results file: a JSON object keyed by API
// full path. A missing or malformed file yields an empty map; runtime test
// data is optional by design.
func LoadTestResults(path string, logger *logging.Logger) map[string]TestResults {
	results := map[string]TestResults{}
	if path == "" {
		return results
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if logger != nil && !os.IsNotExist(err) {
			logger.Warn("Could not read test-results file", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return results
	}

	if err := json.Unmarshal(data, &results); err != nil {
		if logger != nil {
			logger.Warn("Malformed test-results file, ignoring tier 2", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
		return map[string]TestResults{}
	}

	for key, r := range results {
		if r.Total < 0 {
			r.Total = 0
		}
		if r.Passed < 0 {
			r.Passed = 0
		}
		if r.Failed < 0 {
			r.Failed = 0
		}
		if r.Skipped < 0 {
			r.Skipped = 0
		}
		if logger != nil && r.Passed+r.Failed > r.Executed() {
			logger.Warn("Inconsistent test counts, pass rate recomputed from executed tests", logging.Fields{
				"path":    path,
				"api":     key,
				"total":   r.Total,
				"passed":  r.Passed,
				"failed":  r.Failed,
				"skipped": r.Skipped,
			})
		}
		r.PercentPassing = r.passRate()
		results[key] = r
	}

	return results
}
