// Package config defines core configuration types for revfix. These are
// pure data structures; discovery and merging live in internal/configloader.
package config

// ProviderConfig selects and locates the reviewer model.
type ProviderConfig struct {
	// Name is the provider kind: "openai", "ollama", or "lmstudio".
	Name string `yaml:"name"`

	// Model is the model identifier sent with each request.
	Model string `yaml:"model"`

	// BaseURL overrides the API endpoint for self-hosted servers.
	BaseURL string `yaml:"base_url,omitempty"`
}

// Config is the root configuration for revfix.
type Config struct {
	// Provider configures the AI collaborator.
	Provider ProviderConfig `yaml:"provider"`

	// FailOn is the severity threshold for a non-zero exit: "error",
	// "warning", "info", or "none".
	FailOn string `yaml:"fail_on"`

	// MaxIssues caps the number of issues kept from one review.
	MaxIssues int `yaml:"max_issues"`

	// Ignore contains glob patterns for files excluded from review.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backup enables sidecar backups before fixes are written.
	Backup bool `yaml:"backup"`

	// CLI-level options, never persisted to config files.

	// DryRun renders previews without writing.
	DryRun bool `yaml:"-"`

	// Yes skips per-fix confirmation.
	Yes bool `yaml:"-"`
}

// New returns a Config with sensible defaults.
func New() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:  "openai",
			Model: "gpt-4o",
		},
		FailOn:    "error",
		MaxIssues: 50,
		Backup:    false,
	}
}
