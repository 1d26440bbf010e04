// Package configloader discovers, loads, and merges revfix configuration:
// defaults, then the project config file, then CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/revfix/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file path from the --config flag. When set,
	// project discovery is skipped and a missing file is an error.
	ExplicitPath string
}

// LoadResult contains the resolved configuration and its provenance.
type LoadResult struct {
	Config *config.Config

	// LoadedFrom is the config file that was applied, if any.
	LoadedFrom string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves configuration. Precedence (highest first): CLI flags applied
// by the caller, the explicit or discovered config file, then defaults.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: config.New()}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	path := opts.ExplicitPath
	if path == "" {
		discovered, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	if path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			if opts.ExplicitPath != "" {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
			// A broken discovered config degrades to defaults with a warning.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ignoring unreadable config %s: %v", path, err))
			return result, nil
		}
		result.Config = merge(result.Config, fileCfg)
		result.LoadedFrom = path
	}

	if err := validate(result.Config); err != nil {
		return nil, err
	}

	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return config.FromYAML(data)
}

// merge overlays non-zero fields of over onto base.
func merge(base, over *config.Config) *config.Config {
	merged := *base

	if over.Provider.Name != "" {
		merged.Provider.Name = over.Provider.Name
	}
	if over.Provider.Model != "" {
		merged.Provider.Model = over.Provider.Model
	}
	if over.Provider.BaseURL != "" {
		merged.Provider.BaseURL = over.Provider.BaseURL
	}
	if over.FailOn != "" {
		merged.FailOn = over.FailOn
	}
	if over.MaxIssues != 0 {
		merged.MaxIssues = over.MaxIssues
	}
	if len(over.Ignore) > 0 {
		merged.Ignore = over.Ignore
	}
	if over.Backup {
		merged.Backup = true
	}

	return &merged
}

func validate(cfg *config.Config) error {
	switch cfg.FailOn {
	case "", "none", "error", "warning", "info":
	default:
		return fmt.Errorf("invalid fail_on %q: must be error, warning, info, or none", cfg.FailOn)
	}
	if cfg.MaxIssues < 0 {
		return fmt.Errorf("invalid max_issues %d: must be non-negative", cfg.MaxIssues)
	}
	if cfg.Provider.Name == "" {
		return fmt.Errorf("provider.name is required")
	}
	return nil
}
