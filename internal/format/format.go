// Package format holds the catalog of output formats a document can be
// generated in: the target length and stylistic profile for each format key.
package format

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Spec describes one output format: what the document should look like and
// roughly how long it should be.
type Spec struct {
	Key             string `yaml:"key"`
	Description     string `yaml:"description"`
	WordCount       int    `yaml:"wordCount"`
	Characteristics string `yaml:"characteristics"`
}

// DefaultKey is the catch-all entry unknown format keys resolve to.
const DefaultKey = "custom"

// Catalog is an immutable lookup of format specs, built once at startup and
// passed by reference into the rest of the pipeline.
type Catalog struct {
	specs map[string]Spec
	order []string
}

func defaultSpecs() []Spec {
	return []Spec{
		{
			Key:             "short-speech",
			Description:     "15-minute speech",
			WordCount:       2000,
			Characteristics: "conversational, engaging, with clear sections and natural transitions",
		},
		{
			Key:             "long-letter",
			Description:     "1,000-word letter",
			WordCount:       1000,
			Characteristics: "formal, structured, with a clear introduction and conclusion",
		},
		{
			Key:             "blog-post",
			Description:     "500-word blog post",
			WordCount:       500,
			Characteristics: "informative, engaging, with a compelling headline and clear takeaways",
		},
		{
			Key:             "social-post",
			Description:     "LinkedIn post",
			WordCount:       300,
			Characteristics: "professional, concise, with a hook and call-to-action",
		},
		{
			Key:             "press-release",
			Description:     "Press release",
			WordCount:       800,
			Characteristics: "formal, factual, with quotes and a clear news angle",
		},
		{
			Key:             "executive-summary",
			Description:     "Executive summary",
			WordCount:       500,
			Characteristics: "concise, data-driven, highlighting key points and recommendations",
		},
		{
			Key:             DefaultKey,
			Description:     "Custom format",
			WordCount:       1000,
			Characteristics: "well-structured and professional",
		},
	}
}

// DefaultCatalog builds the built-in catalog.
func DefaultCatalog() *Catalog {
	c, _ := newCatalog(defaultSpecs())
	return c
}

func newCatalog(specs []Spec) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]Spec, len(specs))}
	for _, s := range specs {
		if err := validateSpec(s); err != nil {
			return nil, err
		}
		if _, dup := c.specs[s.Key]; !dup {
			c.order = append(c.order, s.Key)
		}
		c.specs[s.Key] = s
	}
	if _, ok := c.specs[DefaultKey]; !ok {
		return nil, errMissingDefault
	}
	return c, nil
}

// Resolve maps a requested format key to its spec. Unknown keys fall back to
// the catch-all "custom" entry rather than failing. When the resolved entry
// is the custom entry and customWordCount is supplied, it overrides the word
// count; unparsable or non-positive values are ignored with a warning and the
// catalog default retained.
func (c *Catalog) Resolve(key, customWordCount string) Spec {
	spec, ok := c.specs[strings.TrimSpace(key)]
	if !ok {
		spec = c.specs[DefaultKey]
		log.Debug().Str("key", key).Msg("unknown format key, using custom")
	}
	if spec.Key == DefaultKey {
		if v := strings.TrimSpace(customWordCount); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				spec.WordCount = n
			} else {
				log.Warn().Str("value", customWordCount).Msg("invalid custom word count, using default")
			}
		}
	}
	return spec
}

// Keys returns the catalog keys in declaration order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
