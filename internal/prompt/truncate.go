package prompt

import (
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/godraft/internal/budget"
)

// Truncate caps text at maxTokens estimated tokens. Text that already fits is
// returned unchanged. Oversized text is head-truncated: the first
// maxTokens*CharsPerToken characters are kept and a visible notice naming the
// section is appended, so the caller can always tell content was cut. No
// semantic summarisation is attempted; never silently dropping content
// matters more than elegance here. Empty input is returned as-is.
func Truncate(text string, maxTokens int, sectionLabel string) string {
	if text == "" {
		return ""
	}
	estimated := budget.EstimateTokens(text)
	if maxTokens < 0 {
		maxTokens = 0
	}
	if estimated <= maxTokens {
		return text
	}

	keep := trimToRuneBoundary(text, maxTokens*budget.CharsPerToken)
	log.Warn().
		Str("section", sectionLabel).
		Int("estimatedTokens", estimated).
		Int("maxTokens", maxTokens).
		Msg("truncated section to fit token budget")

	return keep + truncationNotice(sectionLabel)
}

func truncationNotice(sectionLabel string) string {
	return fmt.Sprintf("\n\n[Note: The %s content was truncated to fit within token limits.]", sectionLabel)
}

// trimToRuneBoundary returns a prefix of s at most maxBytes long, never
// splitting a UTF-8 rune.
func trimToRuneBoundary(s string, maxBytes int) string {
	if maxBytes >= len(s) {
		return s
	}
	if maxBytes <= 0 {
		return ""
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
