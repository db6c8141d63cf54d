package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveKnownKey(t *testing.T) {
	c := DefaultCatalog()
	s := c.Resolve("blog-post", "")
	if s.Key != "blog-post" || s.WordCount != 500 {
		t.Fatalf("unexpected spec: %+v", s)
	}
}

func TestResolveUnknownKeyFallsBackToCustom(t *testing.T) {
	c := DefaultCatalog()
	got := c.Resolve("not-a-real-format", "")
	want := c.Resolve("custom", "")
	if got != want {
		t.Fatalf("fallback mismatch: got %+v want %+v", got, want)
	}
	if got.Key != DefaultKey {
		t.Fatalf("fallback should resolve to %q, got %q", DefaultKey, got.Key)
	}
}

func TestResolveCustomWordCountOverride(t *testing.T) {
	c := DefaultCatalog()
	cases := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "750", 750},
		{"unparsable", "abc", 1000},
		{"negative", "-5", 1000},
		{"zero", "0", 1000},
		{"empty", "", 1000},
		{"whitespace padded", " 750 ", 750},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := c.Resolve("custom", tc.value)
			if s.WordCount != tc.want {
				t.Fatalf("Resolve(custom, %q).WordCount = %d, want %d", tc.value, s.WordCount, tc.want)
			}
		})
	}
}

func TestResolveOverrideIgnoredForNamedFormats(t *testing.T) {
	c := DefaultCatalog()
	s := c.Resolve("press-release", "50")
	if s.WordCount != 800 {
		t.Fatalf("custom word count must not override named formats, got %d", s.WordCount)
	}
}

func TestResolveDoesNotMutateCatalog(t *testing.T) {
	c := DefaultCatalog()
	_ = c.Resolve("custom", "9999")
	if s := c.Resolve("custom", ""); s.WordCount != 1000 {
		t.Fatalf("catalog entry was mutated by override: %d", s.WordCount)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formats.yaml")
	content := `
- key: haiku
  description: Three-line haiku
  wordCount: 17
  characteristics: minimal, evocative
- key: custom
  description: Custom format
  wordCount: 1000
  characteristics: well-structured and professional
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if s := c.Resolve("haiku", ""); s.WordCount != 17 {
		t.Fatalf("unexpected spec: %+v", s)
	}
	if got := c.Keys(); len(got) != 2 || got[0] != "haiku" {
		t.Fatalf("unexpected keys: %v", got)
	}
}

func TestLoadCatalogRejectsBadEntries(t *testing.T) {
	dir := t.TempDir()

	missingDefault := filepath.Join(dir, "nodefault.yaml")
	os.WriteFile(missingDefault, []byte("- key: a\n  wordCount: 10\n"), 0o644)
	if _, err := LoadCatalog(missingDefault); err == nil {
		t.Fatal("catalog without a custom entry should be rejected")
	}

	badCount := filepath.Join(dir, "badcount.yaml")
	os.WriteFile(badCount, []byte("- key: custom\n  wordCount: 0\n"), 0o644)
	if _, err := LoadCatalog(badCount); err == nil {
		t.Fatal("non-positive word count should be rejected")
	}
}
