package budget

import "math"

// CharsPerToken is the coarse approximation ratio used throughout prompt
// sizing (~4 chars per token in English). It is a deliberate trade: zero
// external dependency and O(1) cost instead of a real tokenizer. The safety
// margin reserved downstream absorbs the approximation error. Swapping in a
// precise tokenizer only requires replacing the two estimate functions below.
const CharsPerToken = 4

// EstimateTokensFromChars converts a character count into an estimated token
// count. Uses ceiling division so the estimate never undershoots; the result
// is at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return int(math.Ceil(float64(charCount) / float64(CharsPerToken)))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(len(s))
}

// EstimateSections estimates the combined token cost of several prompt
// sections (instructions, brief, reference pools).
func EstimateSections(sections ...string) int {
	total := 0
	for _, s := range sections {
		total += EstimateTokens(s)
	}
	return total
}
