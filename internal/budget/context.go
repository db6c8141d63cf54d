package budget

import (
	"math"
	"strings"
)

// DefaultContextTokens is the conservative fallback context window assumed
// for unknown or unconfigured models.
const DefaultContextTokens = 8192

// knownModelMax contains rough context sizes for common model identifiers.
// Best-effort only; unlisted models fall through to suffix heuristics.
var knownModelMax = map[string]int{
	"gpt-4o":        128_000,
	"gpt-4o-mini":   128_000,
	"gpt-4-turbo":   128_000,
	"gpt-3.5-turbo": 16_384,

	"claude-3-5-sonnet": 200_000,
	"claude-3-opus":     200_000,
	"claude-3-haiku":    200_000,

	"llama-3":   8_192,
	"llama-3.1": 128_000,
}

// ModelContextTokens returns an estimated maximum context window for a given
// model name. Unknown models fall back to DefaultContextTokens.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if name == "" {
		return DefaultContextTokens
	}
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	// Common numeric suffixes in model names, e.g. "mymodel-128k".
	for _, h := range []struct {
		suffix string
		tokens int
	}{
		{"1m", 1_000_000},
		{"512k", 512_000},
		{"200k", 200_000},
		{"128k", 128_000},
		{"32k", 32_000},
	} {
		if strings.HasSuffix(name, h.suffix) {
			return h.tokens
		}
	}
	return DefaultContextTokens
}

// RemainingContext computes the remaining input token budget given a model,
// a reservation for output generation, and the estimated prompt tokens.
// Never negative.
func RemainingContext(modelName string, reservedForOutput int, promptTokens int) int {
	if reservedForOutput < 0 {
		reservedForOutput = 0
	}
	remaining := ModelContextTokens(modelName) - reservedForOutput - promptTokens
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FitsInContext reports whether the prompt can fit into the model's context
// window when reserving the specified number of output tokens.
func FitsInContext(modelName string, reservedForOutput int, promptTokens int) bool {
	return RemainingContext(modelName, reservedForOutput, promptTokens) > 0
}

// HeadroomTokens returns a safety headroom to subtract from the model context
// so prompt sizing avoids overruns from tokenizer and message framing
// overheads: the larger of 5% of the context or 512 tokens.
func HeadroomTokens(modelName string) int {
	dyn := int(math.Ceil(float64(ModelContextTokens(modelName)) * 0.05))
	if dyn < 512 {
		return 512
	}
	return dyn
}

// PromptCeiling derives the total input budget for a model after reserving
// output tokens and headroom.
func PromptCeiling(modelName string, reservedForOutput int) int {
	c := ModelContextTokens(modelName) - reservedForOutput - HeadroomTokens(modelName)
	if c < 0 {
		return 0
	}
	return c
}
