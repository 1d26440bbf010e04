package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration with 2-space indentation.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Template returns a commented starter configuration for `revfix init`.
func Template() []byte {
	return []byte(`# revfix configuration
# Reviewer model endpoint.
provider:
  name: openai        # openai, ollama, or lmstudio
  model: gpt-4o
  # base_url: http://localhost:11434/v1/chat/completions

# Exit non-zero when issues at or above this severity remain.
# One of: error, warning, info, none.
fail_on: error

# Keep at most this many issues per review.
max_issues: 50

# Glob patterns excluded from review.
ignore: []

# Write a sidecar .revfix.orig backup before the first fix to each file.
backup: false
`)
}
