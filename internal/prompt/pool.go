// Package prompt builds the single bounded-size prompt sent to the language
// model: it allocates a token budget among reference-text pools, truncates
// each pool to its allocation, and assembles all sections in a fixed order.
// Everything here is pure computation over in-memory values.
package prompt

import "strings"

// Canonical pool names. Assembly order and division-remainder order are fixed
// at style, past, competitive regardless of which subset is supplied.
const (
	PoolStyle       = "style"
	PoolPast        = "past"
	PoolCompetitive = "competitive"
	// PoolMaterials is the single merged pool used when the caller supplies
	// one undifferentiated blob instead of categorised examples.
	PoolMaterials = "materials"
)

// PoolOrder enumerates the categorised pools in their fixed order.
var PoolOrder = []string{PoolStyle, PoolPast, PoolCompetitive}

// Pool is a named blob of reference text supplied alongside the brief.
type Pool struct {
	Name string
	Text string
}

// Empty reports whether the pool carries no usable text.
func (p Pool) Empty() bool {
	return strings.TrimSpace(p.Text) == ""
}

type section struct {
	Heading string
	Intro   string
	// Label names the section inside the truncation notice.
	Label string
}

var sections = map[string]section{
	PoolStyle: {
		Heading: "WRITING STYLE EXAMPLES:",
		Intro:   "The following examples demonstrate the desired writing style and tone. Emulate this style in your response:",
		Label:   "writing style examples",
	},
	PoolPast: {
		Heading: "PAST EXAMPLES:",
		Intro:   "The following are examples of similar content from the past. Use these for reference on structure and approach:",
		Label:   "past examples",
	},
	PoolCompetitive: {
		Heading: "COMPETITIVE EXAMPLES:",
		Intro:   "The following are examples from competitors or similar organizations. Draw inspiration from these while maintaining originality:",
		Label:   "competitive examples",
	},
	PoolMaterials: {
		Heading: "REFERENCE MATERIALS:",
		Intro:   "The following reference materials were supplied with the brief. Use them for style, structure, and factual grounding:",
		Label:   "reference materials",
	},
}

func sectionFor(name string) section {
	if s, ok := sections[name]; ok {
		return s
	}
	// Unknown pool names still render under a sensible header.
	return section{
		Heading: strings.ToUpper(name) + ":",
		Intro:   "The following reference material was supplied with the brief:",
		Label:   name,
	}
}
