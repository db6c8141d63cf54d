package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// TruncatedMarker is appended when a category's combined text hits its
// character ceiling, so downstream budgeting can surface the cut to the user.
const TruncatedMarker = "[Text truncated due to size limits]"

// FromDir extracts and concatenates text from every file in dir, each block
// headed by the source filename. maxChars caps the combined size; zero or
// negative disables the cap. A missing directory yields an empty string.
func FromDir(dir string, maxChars int) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug().Str("dir", dir).Msg("reference directory not readable, treating as empty")
		return ""
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var blocks []string
	total := 0
	for _, name := range names {
		text := FromFile(filepath.Join(dir, name))
		block := fmt.Sprintf("--- From %s ---\n%s", name, text)
		blocks = append(blocks, block)
		total += len(block)
		if maxChars > 0 && total > maxChars {
			log.Warn().Str("dir", dir).Int("maxChars", maxChars).Msg("stopping extraction at character ceiling")
			break
		}
	}

	combined := strings.Join(blocks, "\n\n")
	if maxChars > 0 && len(combined) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(combined[cut]) {
			cut--
		}
		combined = combined[:cut] + "\n\n" + TruncatedMarker
	}
	return combined
}
