package budget

import "testing"

func TestEstimateTokensFromChars(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},   // ceil(1/4)=1
		{3, 1},   // ceil(3/4)=1
		{4, 1},   // ceil(4/4)=1
		{5, 2},   // ceil(5/4)=2
		{400, 100},
	}
	for _, c := range cases {
		got := EstimateTokensFromChars(c.in)
		if got != c.want {
			t.Fatalf("EstimateTokensFromChars(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEstimateSections(t *testing.T) {
	// 6 chars -> 2, 12 chars -> 3, 3 -> 1, 4 -> 1
	got := EstimateSections("system", "user message", "abc", "defg")
	if got != 7 {
		t.Fatalf("EstimateSections() = %d, want %d", got, 7)
	}
}

func TestModelContextTokens(t *testing.T) {
	if ModelContextTokens("") != DefaultContextTokens {
		t.Fatal("empty model should use the default context")
	}
	if ModelContextTokens("gpt-4o") < 100_000 {
		t.Fatal("gpt-4o should be large (~128k)")
	}
	if ModelContextTokens("LLAMA-3.1") < 100_000 {
		t.Fatal("model lookup should be case-insensitive")
	}
	if ModelContextTokens("mystery-512k") != 512_000 {
		t.Fatal("numeric suffix heuristic 512k should map to 512k tokens")
	}
}

func TestRemainingAndFits(t *testing.T) {
	model := "gpt-4o"
	max := ModelContextTokens(model)
	prompt := max / 2
	rem := RemainingContext(model, 2000, prompt)
	if rem <= 0 {
		t.Fatalf("remaining should be positive, got %d", rem)
	}
	if !FitsInContext(model, 2000, prompt) {
		t.Fatal("prompt should fit when remaining is positive")
	}
	if RemainingContext(model, 0, max+1) != 0 {
		t.Fatal("overflowing prompt should clamp remaining to zero")
	}
	if RemainingContext(model, -100, 0) != max {
		t.Fatal("negative output reservation should be treated as zero")
	}
}

func TestPromptCeiling(t *testing.T) {
	c := PromptCeiling("gpt-4o", 4000)
	want := ModelContextTokens("gpt-4o") - 4000 - HeadroomTokens("gpt-4o")
	if c != want {
		t.Fatalf("PromptCeiling = %d, want %d", c, want)
	}
	if PromptCeiling("llama-3", 100_000) != 0 {
		t.Fatal("ceiling should clamp at zero for small contexts")
	}
}
