// Package report renders comparison and combined-coverage data into the
// output formats consumers ask for: machine JSON, Markdown tables, console
// text, and a shields.io badge payload.
package report

import (
	"fmt"
	"sort"
	"strings"

	"apicov/internal/compare"
	"apicov/internal/coverage"
	"apicov/internal/output"
)

// Format names a renderer.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatConsole  Format = "console"
	FormatBadge    Format = "badge"
)

// ParseFormat validates a format name from a flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatConsole:
		return FormatConsole, nil
	case FormatBadge:
		return FormatBadge, nil
	}
	return "", fmt.Errorf("unknown report format %q (want json, markdown, console, or badge)", s)
}

// JSON renders the comparison result deterministically.
func JSON(result *compare.Result) ([]byte, error) {
	return output.DeterministicEncodeIndented(result, "  ")
}

// missingLine summarizes the missing members of one interface. Long lists
// collapse to a count so console output stays scannable.
func missingLine(members []compare.MemberComparison) string {
	var names []string
	for _, m := range members {
		if m.Status == compare.StatusMissing {
			names = append(names, m.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) > 10 {
		return fmt.Sprintf("Missing: %d members", len(names))
	}
	return "Missing: " + strings.Join(names, ", ")
}

// Console renders a human-readable comparison summary.
func Console(result *compare.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "API coverage: %s vs %s\n", result.ReferencePath, result.PolyfillPath)
	mode := "lenient"
	if result.StrictSignatures {
		mode = "strict"
	}
	fmt.Fprintf(&b, "Signature mode: %s\n\n", mode)

	for _, iface := range result.Interfaces {
		target := "(none)"
		if iface.PolyfillInterfaceName != nil {
			target = *iface.PolyfillInterfaceName
		}
		fmt.Fprintf(&b, "%s -> %s: %s (%d/%d covered, %d partial, %d missing)\n",
			iface.ReferenceInterfaceName, target,
			output.FormatPercent(iface.Stats.PercentComplete),
			iface.Stats.Covered, iface.Stats.Total,
			iface.Stats.Partial, iface.Stats.Missing)
		if line := missingLine(iface.Members); line != "" {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	fmt.Fprintf(&b, "\nOverall: %s (%d/%d covered, %d partial, %d missing)\n",
		output.FormatPercent(result.Overall.PercentComplete),
		result.Overall.Covered, result.Overall.Total,
		result.Overall.Partial, result.Overall.Missing)

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	return b.String()
}

// Markdown renders the comparison result as a table per interface plus an
// overall summary row.
func Markdown(result *compare.Result) string {
	var b strings.Builder

	b.WriteString("# API Coverage Report\n\n")
	fmt.Fprintf(&b, "Reference: `%s`  \nPolyfill: `%s`  \nStrict signatures: %v\n\n",
		result.ReferencePath, result.PolyfillPath, result.StrictSignatures)

	b.WriteString("| Interface | Coverage | Covered | Partial | Missing |\n")
	b.WriteString("|-----------|----------|---------|---------|---------|\n")
	for _, iface := range result.Interfaces {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d |\n",
			iface.ReferenceInterfaceName,
			output.FormatPercent(iface.Stats.PercentComplete),
			iface.Stats.Covered, iface.Stats.Partial, iface.Stats.Missing)
	}
	fmt.Fprintf(&b, "| **Overall** | **%s** | %d | %d | %d |\n\n",
		output.FormatPercent(result.Overall.PercentComplete),
		result.Overall.Covered, result.Overall.Partial, result.Overall.Missing)

	for _, iface := range result.Interfaces {
		if iface.Stats.Missing == 0 && iface.Stats.Partial == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", iface.ReferenceInterfaceName)
		b.WriteString("| Member | Status | Detail |\n")
		b.WriteString("|--------|--------|--------|\n")
		for _, m := range iface.Members {
			if m.Status == compare.StatusCovered {
				continue
			}
			detail := m.SignatureDiff
			if detail == "" {
				detail = "-"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Name, m.Status, detail)
		}
		b.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// Badge is a shields.io endpoint payload.
type Badge struct {
	SchemaVersion int    `json:"schemaVersion"`
	Label         string `json:"label"`
	Message       string `json:"message"`
	Color         string `json:"color"`
}

// BadgePayload builds a shields.io badge from the overall percentage.
func BadgePayload(result *compare.Result) ([]byte, error) {
	percent := output.RoundFloat(result.Overall.PercentComplete)
	badge := Badge{
		SchemaVersion: 1,
		Label:         "api coverage",
		Message:       output.FormatPercent(percent),
		Color:         badgeColor(percent),
	}
	return output.DeterministicEncode(badge)
}

func badgeColor(percent float64) string {
	switch {
	case percent >= 90:
		return "brightgreen"
	case percent >= 70:
		return "green"
	case percent >= 50:
		return "yellow"
	case percent >= 30:
		return "orange"
	default:
		return "red"
	}
}

// CombinedConsole renders the final combined coverage list grouped by status.
func CombinedConsole(records []coverage.Combined) string {
	byStatus := map[coverage.Status][]coverage.Combined{}
	for _, rec := range records {
		byStatus[rec.Status] = append(byStatus[rec.Status], rec)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Combined coverage: %d APIs\n", len(records))

	for _, status := range []coverage.Status{
		coverage.StatusCovered, coverage.StatusPartial,
		coverage.StatusStub, coverage.StatusMissing,
	} {
		recs := byStatus[status]
		if len(recs) == 0 {
			continue
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].FullPath < recs[j].FullPath })
		fmt.Fprintf(&b, "\n%s (%d):\n", status, len(recs))
		for _, rec := range recs {
			fmt.Fprintf(&b, "  %s: %d%%", rec.FullPath, rec.Completeness)
			if len(rec.Influences) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(rec.Influences, "; "))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// CombinedJSON renders the combined coverage list deterministically.
func CombinedJSON(records []coverage.Combined) ([]byte, error) {
	return output.DeterministicEncodeIndented(records, "  ")
}
