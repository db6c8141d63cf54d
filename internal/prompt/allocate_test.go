package prompt

import (
	"strings"
	"testing"
)

func poolSum(b Budget) int {
	total := 0
	for _, v := range b.PerPool {
		total += v
	}
	return total
}

func TestAllocateEvenSplitThreePools(t *testing.T) {
	brief := strings.Repeat("b", 400) // 100 tokens
	pools := []Pool{
		{Name: PoolStyle, Text: "style sample"},
		{Name: PoolPast, Text: "past sample"},
		{Name: PoolCompetitive, Text: "competitive sample"},
	}
	b := Allocate(brief, pools, 8000)

	if b.StructureReserve != StructureReserveTokens {
		t.Fatalf("structure reserve = %d", b.StructureReserve)
	}
	if b.BriefAllocation != 100 {
		t.Fatalf("brief allocation = %d, want 100", b.BriefAllocation)
	}
	if b.Remaining != 7400 {
		t.Fatalf("remaining = %d, want 7400", b.Remaining)
	}
	// 7400/3 = 2466 remainder 2; the leftover goes to the last pool.
	if b.PerPool[PoolStyle] != 2466 || b.PerPool[PoolPast] != 2466 || b.PerPool[PoolCompetitive] != 2468 {
		t.Fatalf("unexpected split: %+v", b.PerPool)
	}
	if poolSum(b) != b.Remaining {
		t.Fatalf("pool allocations must sum to remaining: %d != %d", poolSum(b), b.Remaining)
	}
}

func TestAllocateSkipsEmptyPools(t *testing.T) {
	pools := []Pool{
		{Name: PoolStyle, Text: "non-empty"},
		{Name: PoolPast, Text: "   \n\t"},
		{Name: PoolCompetitive, Text: "also non-empty"},
	}
	b := Allocate("brief", pools, 8000)

	if b.PerPool[PoolPast] != 0 {
		t.Fatalf("whitespace-only pool should allocate 0, got %d", b.PerPool[PoolPast])
	}
	// Remaining splits across the two present pools only.
	if b.PerPool[PoolStyle]+b.PerPool[PoolCompetitive] != b.Remaining {
		t.Fatalf("present pools should share the full remaining budget: %+v remaining=%d", b.PerPool, b.Remaining)
	}
	if b.PerPool[PoolCompetitive] < b.PerPool[PoolStyle] {
		t.Fatalf("remainder must favor the last present pool: %+v", b.PerPool)
	}
}

func TestAllocateSinglePoolGetsEverything(t *testing.T) {
	b := Allocate("brief", []Pool{{Name: PoolMaterials, Text: "blob"}}, 8000)
	if b.PerPool[PoolMaterials] != b.Remaining {
		t.Fatalf("single pool should take the whole remaining budget: %+v", b)
	}
}

func TestAllocateNoPools(t *testing.T) {
	b := Allocate("brief", nil, 8000)
	if poolSum(b) != 0 {
		t.Fatalf("no pools means no pool allocations: %+v", b.PerPool)
	}
	if b.Remaining <= 0 {
		t.Fatalf("remaining should stay positive and simply go unused, got %d", b.Remaining)
	}
}

func TestAllocateBriefCapped(t *testing.T) {
	longBrief := strings.Repeat("x", 10_000) // 2500 tokens, over the cap
	b := Allocate(longBrief, nil, 8000)
	if b.BriefAllocation != BriefTokenCap {
		t.Fatalf("brief allocation = %d, want cap %d", b.BriefAllocation, BriefTokenCap)
	}
}

func TestAllocatePathologicalCeiling(t *testing.T) {
	longBrief := strings.Repeat("x", 10_000)
	b := Allocate(longBrief, []Pool{{Name: PoolStyle, Text: "sample"}}, 600)
	if b.Remaining != 0 {
		t.Fatalf("remaining should clamp at zero, got %d", b.Remaining)
	}
	if b.PerPool[PoolStyle] != 0 {
		t.Fatalf("pool allocation should be zero under a pathological ceiling, got %d", b.PerPool[PoolStyle])
	}
}

func TestAllocateZeroCeilingUsesDefault(t *testing.T) {
	b := Allocate("brief", nil, 0)
	if b.Ceiling != DefaultCeiling {
		t.Fatalf("ceiling = %d, want default %d", b.Ceiling, DefaultCeiling)
	}
}

func TestAllocateDeterministic(t *testing.T) {
	pools := []Pool{
		{Name: PoolStyle, Text: "a"},
		{Name: PoolPast, Text: "b"},
	}
	first := Allocate("brief", pools, 5000)
	second := Allocate("brief", pools, 5000)
	if first.Remaining != second.Remaining || len(first.PerPool) != len(second.PerPool) {
		t.Fatal("allocation must be deterministic")
	}
	for k, v := range first.PerPool {
		if second.PerPool[k] != v {
			t.Fatalf("allocation differs for %s: %d vs %d", k, v, second.PerPool[k])
		}
	}
}
