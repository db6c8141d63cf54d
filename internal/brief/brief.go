// Package brief parses a writing brief supplied as a single text file. The
// web UI collects metadata through form fields; the CLI gets the same
// information from labeled lines at the top of the brief file.
package brief

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/hyperifyio/godraft/internal/prompt"
)

// Brief is the parsed request: the brief text itself plus any metadata
// extracted from labeled lines. Raw keeps the original input for
// traceability.
type Brief struct {
	Text            string
	FormatKey       string
	CustomWordCount string
	Meta            prompt.Metadata
	Raw             string
}

// Labeled lines are conservative: a known label, a colon or dash, a value.
// Anything else is brief text.
var (
	formatRe     = regexp.MustCompile(`(?i)^\s*format\s*[:\-]\s*(.+?)\s*$`)
	wordsRe      = regexp.MustCompile(`(?i)^\s*(?:words|word\s*count|length)\s*[:\-]\s*(\d{1,6})\s*(?:words)?\s*$`)
	audienceRe   = regexp.MustCompile(`(?i)^\s*audience\s*[:\-]\s*(.+?)\s*$`)
	objectiveRe  = regexp.MustCompile(`(?i)^\s*objective\s*[:\-]\s*(.+?)\s*$`)
	messagesRe   = regexp.MustCompile(`(?i)^\s*key\s*messages?\s*[:\-]\s*(.+?)\s*$`)
	constraintRe = regexp.MustCompile(`(?i)^\s*constraints?\s*[:\-]\s*(.+?)\s*$`)
	toneRe       = regexp.MustCompile(`(?i)^\s*tone\s*[:\-]\s*(.+?)\s*$`)
	confidenceRe = regexp.MustCompile(`(?i)^\s*confidence\s*[:\-]\s*(.+?)\s*$`)
	regionRe     = regexp.MustCompile(`(?i)^\s*region\s*[:\-]\s*(.+?)\s*$`)
	industryRe   = regexp.MustCompile(`(?i)^\s*industry\s*[:\-]\s*(.+?)\s*$`)
	personaRe    = regexp.MustCompile(`(?i)^\s*persona\s*[:\-]\s*(.+?)\s*$`)
)

// Parse splits a brief file into metadata and brief text. Labeled lines are
// consumed into their fields; every other line stays in Text verbatim. The
// first match of each label wins.
func Parse(input string) Brief {
	b := Brief{Raw: input}
	var kept []string

	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if consumeLabel(line, &b) {
			continue
		}
		kept = append(kept, line)
	}

	b.Text = strings.TrimSpace(strings.Join(kept, "\n"))
	return b
}

func consumeLabel(line string, b *Brief) bool {
	type target struct {
		re  *regexp.Regexp
		dst *string
	}
	targets := []target{
		{formatRe, &b.FormatKey},
		{wordsRe, &b.CustomWordCount},
		{audienceRe, &b.Meta.Audience},
		{objectiveRe, &b.Meta.Objective},
		{messagesRe, &b.Meta.KeyMessages},
		{constraintRe, &b.Meta.Constraints},
		{toneRe, &b.Meta.ToneFormality},
		{confidenceRe, &b.Meta.ToneConfidence},
		{regionRe, &b.Meta.Region},
		{industryRe, &b.Meta.Industry},
		{personaRe, &b.Meta.Persona},
	}
	for _, t := range targets {
		m := t.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if *t.dst == "" {
			*t.dst = strings.TrimSpace(m[1])
		}
		return true
	}
	return false
}
