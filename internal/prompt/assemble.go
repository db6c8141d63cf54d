package prompt

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/godraft/internal/format"
)

// Metadata carries the optional descriptive fields a caller may attach to a
// brief. Empty fields are omitted from the assembled prompt; a label is never
// emitted without a value.
type Metadata struct {
	Audience       string
	Objective      string
	KeyMessages    string
	Constraints    string
	ToneFormality  string
	ToneConfidence string
	Region         string
	Industry       string
	Persona        string
}

type metaField struct {
	Label string
	Value string
}

func (m Metadata) fields() []metaField {
	all := []metaField{
		{"Audience", m.Audience},
		{"Objective", m.Objective},
		{"Key messages", m.KeyMessages},
		{"Constraints", m.Constraints},
		{"Tone formality", m.ToneFormality},
		{"Tone confidence", m.ToneConfidence},
		{"Region", m.Region},
		{"Industry", m.Industry},
		{"Persona", m.Persona},
	}
	out := all[:0]
	for _, f := range all {
		if strings.TrimSpace(f.Value) != "" {
			out = append(out, f)
		}
	}
	return out
}

// Empty reports whether no metadata field is set.
func (m Metadata) Empty() bool {
	return len(m.fields()) == 0
}

// Input bundles everything needed to build a prompt.
type Input struct {
	Brief  string
	Format format.Spec
	Meta   Metadata
	// Pools in their fixed order: style, past, competitive, or a single
	// merged materials pool.
	Pools []Pool
	// Ceiling is the total token budget; zero selects DefaultCeiling.
	Ceiling int
}

// Assemble concatenates the prompt sections in their fixed order: opening
// instruction, brief verbatim, metadata lines, each non-empty pool under its
// header, closing instruction. Deterministic string building only; the pools
// are emitted as given, so callers wanting budget enforcement go through
// Optimize instead.
func Assemble(in Input) string {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		"You are an expert communications professional tasked with writing a %s (approximately %d words) that is %s.\n\n",
		in.Format.Description, in.Format.WordCount, in.Format.Characteristics)

	sb.WriteString("BRIEF:\n")
	sb.WriteString(in.Brief)
	sb.WriteString("\n\n")

	if fields := in.Meta.fields(); len(fields) > 0 {
		sb.WriteString("CONTEXT:\n")
		for _, f := range fields {
			sb.WriteString(f.Label)
			sb.WriteString(": ")
			sb.WriteString(strings.TrimSpace(f.Value))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, p := range in.Pools {
		if p.Empty() {
			continue
		}
		sec := sectionFor(p.Name)
		sb.WriteString(sec.Heading)
		sb.WriteString("\n")
		sb.WriteString(sec.Intro)
		sb.WriteString("\n\n")
		sb.WriteString(p.Text)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb,
		"Write a %s based on the brief provided, drawing on any examples and materials above. The content should be approximately %d words and should be %s.\n\n",
		in.Format.Description, in.Format.WordCount, in.Format.Characteristics)
	sb.WriteString("Format your response as a complete, ready-to-use document without explanations or meta-commentary.\n")

	return sb.String()
}

// Optimize is the full engine pass: allocate the token budget, truncate each
// pool to its allocation, and assemble the final prompt.
func Optimize(in Input) string {
	b := Allocate(in.Brief, in.Pools, in.Ceiling)
	truncated := make([]Pool, 0, len(in.Pools))
	for _, p := range in.Pools {
		if p.Empty() {
			continue
		}
		truncated = append(truncated, Pool{
			Name: p.Name,
			Text: Truncate(p.Text, b.PerPool[p.Name], sectionFor(p.Name).Label),
		})
	}
	in.Pools = truncated
	return Assemble(in)
}
