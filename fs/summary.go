package fs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Summary is the machine-readable result of a run, read by wrapper scripts.
type Summary struct {
	Count int    `yaml:"count"`
	Out   string `yaml:"out"`
}

// WriteSummary writes s as YAML to path.
func WriteSummary(path string, s Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
