package coverage

import (
	"math"
	"math/rand"
	"testing"

	"apicov/internal/annotations"
	"apicov/internal/compare"
)

func member(fullPath string, status compare.Status, exact bool) compare.MemberComparison {
	return compare.MemberComparison{
		Name:           fullPath,
		FullPath:       fullPath,
		Status:         status,
		SignatureMatch: exact,
	}
}

func TestTier1Seeding(t *testing.T) {
	tests := []struct {
		name       string
		status     compare.Status
		exact      bool
		wantScore  int
		wantStatus Status
	}{
		{"covered exact", compare.StatusCovered, true, 100, StatusCovered},
		{"covered widened", compare.StatusCovered, false, 90, StatusCovered},
		{"partial", compare.StatusPartial, false, 50, StatusPartial},
		{"missing", compare.StatusMissing, false, 0, StatusMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := combineMember(member("api", tt.status, tt.exact), nil, annotations.Empty())
			if c.Completeness != tt.wantScore {
				t.Errorf("Completeness = %d, want %d", c.Completeness, tt.wantScore)
			}
			if c.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", c.Status, tt.wantStatus)
			}
		})
	}
}

func TestTier2LowersOnly(t *testing.T) {
	tests := map[string]TestResults{
		"bun.file": {Total: 10, Passed: 4, Failed: 6},
	}

	c := combineMember(member("bun.file", compare.StatusCovered, true), tests, annotations.Empty())
	if c.Completeness != 40 {
		t.Errorf("Completeness = %d, want 40", c.Completeness)
	}
	if c.Status != StatusPartial {
		t.Errorf("Status = %q, want partial", c.Status)
	}
	if len(c.Influences) != 1 || c.Influences[0] != InfluenceTests {
		t.Errorf("Influences = %v", c.Influences)
	}

	// Tier 2 never raises: a partial member with perfect tests stays at 50.
	perfect := map[string]TestResults{
		"bun.hash": {Total: 5, Passed: 5},
	}
	c = combineMember(member("bun.hash", compare.StatusPartial, false), perfect, annotations.Empty())
	if c.Completeness != 50 {
		t.Errorf("perfect tests must not raise completeness: got %d, want 50", c.Completeness)
	}
	if len(c.Influences) != 0 {
		t.Errorf("non-lowering tier should not be recorded: %v", c.Influences)
	}
}

func TestTier2SkippedOnlyTestsIgnored(t *testing.T) {
	tests := map[string]TestResults{
		"bun.which": {Total: 3, Skipped: 3},
	}

	c := combineMember(member("bun.which", compare.StatusCovered, true), tests, annotations.Empty())
	if c.Completeness != 100 {
		t.Errorf("all-skipped test results should not influence the score, got %d", c.Completeness)
	}
}

func TestTier2PassRateAmongExecuted(t *testing.T) {
	// 4 executed (2 skipped), 3 passed: 75%.
	tests := map[string]TestResults{
		"api": {Total: 6, Passed: 3, Failed: 1, Skipped: 2},
	}

	c := combineMember(member("api", compare.StatusCovered, true), tests, annotations.Empty())
	if c.Completeness != 75 {
		t.Errorf("Completeness = %d, want 75", c.Completeness)
	}
}

func TestTier3Cap(t *testing.T) {
	cap := 20
	store := storeWith(t, annotations.Annotation{FullPath: "bun.mmap", MaxCompleteness: &cap})

	c := combineMember(member("bun.mmap", compare.StatusCovered, true), nil, store)
	if c.Completeness != 20 {
		t.Errorf("Completeness = %d, want 20", c.Completeness)
	}
	if c.Status != StatusStub {
		t.Errorf("Status = %q, want stub", c.Status)
	}

	// A cap above the current score changes nothing.
	high := 95
	store = storeWith(t, annotations.Annotation{FullPath: "bun.file", MaxCompleteness: &high})
	c = combineMember(member("bun.file", compare.StatusPartial, false), nil, store)
	if c.Completeness != 50 {
		t.Errorf("high cap must not raise: got %d, want 50", c.Completeness)
	}
}

func TestRequiresNativeRuntimeOverridesEverything(t *testing.T) {
	store := storeWith(t, annotations.Annotation{
		FullPath:              "Transpiler.transform",
		RequiresNativeRuntime: true,
		RequiresNativeReason:  "needs the native transpiler",
	})

	c := combineMember(member("Transpiler.transform", compare.StatusCovered, true), nil, store)
	if c.Completeness != 0 {
		t.Errorf("Completeness = %d, want 0", c.Completeness)
	}
	if c.Status != StatusMissing {
		t.Errorf("Status = %q, want missing", c.Status)
	}
	found := false
	for _, inf := range c.Influences {
		if inf == InfluenceNative {
			found = true
		}
	}
	if !found {
		t.Errorf("Influences = %v, want to include %q", c.Influences, InfluenceNative)
	}
}

// Final completeness never exceeds the minimum of all present tiers.
func TestMonotonicNonIncreaseProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []compare.Status{compare.StatusCovered, compare.StatusPartial, compare.StatusMissing}

	for i := 0; i < 1000; i++ {
		status := statuses[rng.Intn(len(statuses))]
		exact := rng.Intn(2) == 0

		tier1 := 0
		switch status {
		case compare.StatusCovered:
			tier1 = 100
			if !exact {
				tier1 = 90
			}
		case compare.StatusPartial:
			tier1 = 50
		}

		tests := map[string]TestResults{}
		tier2 := math.MaxInt
		if rng.Intn(2) == 0 {
			total := rng.Intn(20)
			passed := 0
			if total > 0 {
				passed = rng.Intn(total + 1)
			}
			r := TestResults{Total: total, Passed: passed, Failed: total - passed}
			tests["api"] = r
			if r.Executed() > 0 {
				tier2 = int(math.Round(float64(passed) / float64(total) * 100))
			}
		}

		store := annotations.Empty()
		tier3 := math.MaxInt
		if rng.Intn(2) == 0 {
			cap := rng.Intn(101)
			store = storeWith(t, annotations.Annotation{FullPath: "api", MaxCompleteness: &cap})
			tier3 = cap
		}

		c := combineMember(member("api", status, exact), tests, store)

		bound := tier1
		if tier2 < bound {
			bound = tier2
		}
		if tier3 < bound {
			bound = tier3
		}
		if c.Completeness > bound {
			t.Fatalf("iteration %d: completeness %d exceeds tier minimum %d (tier1=%d tier2=%d tier3=%d)",
				i, c.Completeness, bound, tier1, tier2, tier3)
		}
	}
}

func TestStatusFromCompleteness(t *testing.T) {
	tests := []struct {
		in   int
		want Status
	}{
		{100, StatusCovered},
		{90, StatusCovered},
		{89, StatusPartial},
		{30, StatusPartial},
		{29, StatusStub},
		{1, StatusStub},
		{0, StatusMissing},
	}

	for _, tt := range tests {
		if got := StatusFromCompleteness(tt.in); got != tt.want {
			t.Errorf("StatusFromCompleteness(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCombineDefaultsUntouchedCatalogPaths(t *testing.T) {
	result := &compare.Result{
		Interfaces: []compare.InterfaceComparison{
			{Members: []compare.MemberComparison{member("bun.file", compare.StatusCovered, true)}},
		},
	}
	catalog := []string{"bun.file", "bun.gc", "bun.serve"}

	combined := Combine(result, catalog, nil, nil)

	if len(combined) != 3 {
		t.Fatalf("expected 3 records, got %d", len(combined))
	}
	byPath := map[string]Combined{}
	for _, c := range combined {
		byPath[c.FullPath] = c
	}
	if byPath["bun.file"].Completeness != 100 {
		t.Errorf("bun.file = %d, want 100", byPath["bun.file"].Completeness)
	}
	for _, path := range []string{"bun.gc", "bun.serve"} {
		if byPath[path].Status != StatusMissing || byPath[path].Completeness != 0 {
			t.Errorf("%s should default to missing/0, got %+v", path, byPath[path])
		}
	}
}

func storeWith(t *testing.T, list ...annotations.Annotation) *annotations.Store {
	t.Helper()
	store := annotations.Empty()
	for _, a := range list {
		store.Put(a)
	}
	return store
}
