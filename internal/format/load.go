package format

import (
	"errors"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

var errMissingDefault = errors.New("format catalog has no \"" + DefaultKey + "\" entry")

// LoadCatalog reads a YAML list of format specs from path. The file must
// contain a "custom" entry; every entry needs a key and a positive word count.
// Adding a new output format is a catalog edit, not a code change.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read format catalog: %w", err)
	}
	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse format catalog %s: %w", path, err)
	}
	c, err := newCatalog(specs)
	if err != nil {
		return nil, fmt.Errorf("format catalog %s: %w", path, err)
	}
	return c, nil
}

func validateSpec(s Spec) error {
	if s.Key == "" {
		return errors.New("format entry missing key")
	}
	if s.WordCount <= 0 {
		return fmt.Errorf("format %q: word count must be positive", s.Key)
	}
	return nil
}
