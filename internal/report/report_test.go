package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apicov/internal/compare"
	"apicov/internal/coverage"
	"apicov/internal/ifacemap"
)

func strPtr(s string) *string { return &s }

func runCompare(t *testing.T, refContent, polyContent string, mappings []ifacemap.Mapping) *compare.Result {
	t.Helper()

	refDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(refDir, "ref.d.ts"), []byte(refContent), 0644); err != nil {
		t.Fatal(err)
	}
	polyPath := filepath.Join(t.TempDir(), "poly.d.ts")
	if err := os.WriteFile(polyPath, []byte(polyContent), 0644); err != nil {
		t.Fatal(err)
	}

	engine := compare.NewEngine(compare.Options{
		ReferenceDeclDir: refDir,
		PolyfillDeclPath: polyPath,
		Mappings:         mappings,
		SkipList:         []ifacemap.SkipEntry{},
	}, nil)

	result, err := engine.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	return result
}

func TestConsoleFullyCovered(t *testing.T) {
	ref := `
declare module "bun" {
  export const version: string;
  export function file(path: string): string;
}
`
	poly := `
export interface BunPolyfillModule {
  version: string;
  file(path: string): string;
}
`
	result := runCompare(t, ref, poly, []ifacemap.Mapping{
		{Reference: "bun", Polyfill: "BunPolyfillModule"},
	})

	if result.Overall.Total != 2 || result.Overall.Covered != 2 {
		t.Fatalf("expected 2/2 covered, got %+v", result.Overall)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected zero warnings, got %v", result.Warnings)
	}

	text := Console(result)
	if !strings.Contains(text, "100%") {
		t.Errorf("console output should show 100%%, got:\n%s", text)
	}
	if strings.Contains(text, "Missing:") {
		t.Errorf("fully covered run should print no missing line, got:\n%s", text)
	}
}

func TestConsoleMissingCountForm(t *testing.T) {
	var members strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&members, "  export const field%d: string;\n", i)
	}
	ref := "declare module \"bun\" {\n" + members.String() + "}\n"
	poly := `export interface BunPolyfillModule { unrelated: number; }`

	result := runCompare(t, ref, poly, []ifacemap.Mapping{
		{Reference: "bun", Polyfill: "BunPolyfillModule"},
	})

	if result.Overall.Total != 12 || result.Overall.Missing != 12 {
		t.Fatalf("expected 12 missing of 12, got %+v", result.Overall)
	}
	if result.Overall.PercentComplete != 0 {
		t.Fatalf("percentComplete = %v, want 0", result.Overall.PercentComplete)
	}

	text := Console(result)
	if !strings.Contains(text, "Missing: 12 members") {
		t.Errorf("12 missing members should render as a count, got:\n%s", text)
	}
	if strings.Contains(text, "field0,") {
		t.Errorf("count form should not enumerate names, got:\n%s", text)
	}
}

func TestConsoleMissingEnumeratedForm(t *testing.T) {
	ref := `
declare module "bun" {
  export const name0: string;
  export const name1: string;
}
`
	poly := `export interface BunPolyfillModule { unrelated: number; }`

	result := runCompare(t, ref, poly, []ifacemap.Mapping{
		{Reference: "bun", Polyfill: "BunPolyfillModule"},
	})

	text := Console(result)
	if !strings.Contains(text, "Missing: name0, name1") {
		t.Errorf("2 missing members should be enumerated, got:\n%s", text)
	}
}

func TestMissingLine(t *testing.T) {
	makeMembers := func(n int) []compare.MemberComparison {
		var out []compare.MemberComparison
		for i := 0; i < n; i++ {
			out = append(out, compare.MemberComparison{
				Name:   fmt.Sprintf("name%d", i),
				Status: compare.StatusMissing,
			})
		}
		return out
	}

	tests := []struct {
		name    string
		members []compare.MemberComparison
		want    string
	}{
		{"none", nil, ""},
		{"two", makeMembers(2), "Missing: name0, name1"},
		{"ten", makeMembers(10), "Missing: name0, name1, name2, name3, name4, name5, name6, name7, name8, name9"},
		{"eleven", makeMembers(11), "Missing: 11 members"},
		{"covered only", []compare.MemberComparison{{Name: "x", Status: compare.StatusCovered}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := missingLine(tt.members); got != tt.want {
				t.Errorf("missingLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdown(t *testing.T) {
	result := &compare.Result{
		ReferencePath: "types/",
		PolyfillPath:  "poly.d.ts",
		Interfaces: []compare.InterfaceComparison{
			{
				ReferenceInterfaceName: "bun",
				PolyfillInterfaceName:  strPtr("BunPolyfillModule"),
				Members: []compare.MemberComparison{
					{Name: "version", Status: compare.StatusCovered},
					{Name: "gc", Status: compare.StatusMissing},
				},
				Stats: compare.Stats{Total: 2, Covered: 1, Missing: 1, PercentComplete: 50},
			},
		},
		Overall:  compare.Stats{Total: 2, Covered: 1, Missing: 1, PercentComplete: 50},
		Warnings: []string{"Could not find reference type: Transpiler"},
	}

	md := Markdown(result)
	for _, want := range []string{
		"| Interface | Coverage |",
		"| bun | 50% | 1 | 0 | 1 |",
		"| **Overall** | **50%** |",
		"| gc | missing | - |",
		"- Could not find reference type: Transpiler",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q, got:\n%s", want, md)
		}
	}
	if strings.Contains(md, "| version |") {
		t.Error("covered members should not appear in the detail table")
	}
}

func TestBadgePayload(t *testing.T) {
	tests := []struct {
		percent float64
		color   string
		message string
	}{
		{100, "brightgreen", "100%"},
		{90, "brightgreen", "90%"},
		{75.5, "green", "75.5%"},
		{50, "yellow", "50%"},
		{30, "orange", "30%"},
		{0, "red", "0%"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			data, err := BadgePayload(&compare.Result{
				Overall: compare.Stats{PercentComplete: tt.percent},
			})
			if err != nil {
				t.Fatal(err)
			}

			var badge Badge
			if err := json.Unmarshal(data, &badge); err != nil {
				t.Fatal(err)
			}
			if badge.SchemaVersion != 1 {
				t.Errorf("schemaVersion = %d, want 1", badge.SchemaVersion)
			}
			if badge.Label != "api coverage" {
				t.Errorf("label = %q", badge.Label)
			}
			if badge.Message != tt.message {
				t.Errorf("message = %q, want %q", badge.Message, tt.message)
			}
			if badge.Color != tt.color {
				t.Errorf("color = %q, want %q", badge.Color, tt.color)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "Markdown", " console ", "BADGE"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestCombinedConsole(t *testing.T) {
	records := []coverage.Combined{
		{FullPath: "bun.version", Completeness: 100, Status: coverage.StatusCovered},
		{FullPath: "bun.file", Completeness: 45, Status: coverage.StatusPartial, Influences: []string{"reduced by tests"}},
		{FullPath: "bun.spawn", Completeness: 0, Status: coverage.StatusMissing, Influences: []string{"requires native runtime"}},
	}

	text := CombinedConsole(records)
	for _, want := range []string{
		"Combined coverage: 3 APIs",
		"covered (1):",
		"bun.version: 100%",
		"bun.file: 45% (reduced by tests)",
		"missing (1):",
		"bun.spawn: 0% (requires native runtime)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("combined console missing %q, got:\n%s", want, text)
		}
	}
}

func TestJSONDeterministic(t *testing.T) {
	result := runCompare(t, `declare module "bun" { export const version: string; }`,
		`export interface BunPolyfillModule { version: string; }`,
		[]ifacemap.Mapping{{Reference: "bun", Polyfill: "BunPolyfillModule"}})
	result.Timestamp = "2026-01-01T00:00:00Z"

	first, err := JSON(result)
	if err != nil {
		t.Fatal(err)
	}
	second, err := JSON(result)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("JSON renderings of identical results should be byte-identical")
	}
}
