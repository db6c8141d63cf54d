package brief

import (
	"strings"
	"testing"
)

func TestParseExtractsLabeledLines(t *testing.T) {
	input := `Format: blog-post
Audience: prospective customers
Tone: friendly
Region: EMEA

Announce the launch of Product X.
Highlight the new reporting features.`

	b := Parse(input)

	if b.FormatKey != "blog-post" {
		t.Fatalf("format = %q", b.FormatKey)
	}
	if b.Meta.Audience != "prospective customers" || b.Meta.ToneFormality != "friendly" || b.Meta.Region != "EMEA" {
		t.Fatalf("metadata mismatch: %+v", b.Meta)
	}
	if strings.Contains(b.Text, "Format:") || strings.Contains(b.Text, "Audience:") {
		t.Fatalf("labeled lines must be consumed, got %q", b.Text)
	}
	if !strings.Contains(b.Text, "Announce the launch of Product X.") {
		t.Fatalf("brief text lost: %q", b.Text)
	}
	if b.Raw != input {
		t.Fatal("Raw must keep the original input")
	}
}

func TestParseWordCount(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"Words: 750", "750"},
		{"Word count: 1200 words", "1200"},
		{"Length - 500", "500"},
	}
	for _, c := range cases {
		b := Parse(c.line + "\nThe brief body.")
		if b.CustomWordCount != c.want {
			t.Fatalf("Parse(%q).CustomWordCount = %q, want %q", c.line, b.CustomWordCount, c.want)
		}
	}
}

func TestParseFirstLabelWins(t *testing.T) {
	b := Parse("Audience: engineers\nAudience: designers\nBody.")
	if b.Meta.Audience != "engineers" {
		t.Fatalf("audience = %q, want first match", b.Meta.Audience)
	}
	if strings.Contains(b.Text, "Audience") {
		t.Fatal("repeated labels are still consumed")
	}
}

func TestParsePlainBrief(t *testing.T) {
	input := "Write a letter thanking the team for a strong quarter."
	b := Parse(input)
	if b.Text != input {
		t.Fatalf("plain brief should pass through, got %q", b.Text)
	}
	if b.FormatKey != "" || !b.Meta.Empty() {
		t.Fatalf("no metadata expected, got %+v", b)
	}
}

func TestParseEmptyInput(t *testing.T) {
	b := Parse("")
	if b.Text != "" {
		t.Fatalf("empty input should parse to empty text, got %q", b.Text)
	}
}
