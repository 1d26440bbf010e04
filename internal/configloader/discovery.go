package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// revfixConfigFiles are the config file names searched for, in order of
// preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var revfixConfigFiles = []string{
	".revfix.yml",
	".revfix.yaml",
	"revfix.yml",
	"revfix.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root, where the upward
// search stops.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// FindProjectConfig searches upward from workDir for a revfix config file.
// The search stops at a VCS root or the filesystem root. Returns "" when
// nothing is found.
func FindProjectConfig(ctx context.Context, workDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("find project config: %w", err)
	}

	dir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", workDir, err)
	}

	for {
		if path := findConfigInDir(dir); path != "" {
			return path, nil
		}

		if isVCSRoot(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func findConfigInDir(dir string) string {
	for _, name := range revfixConfigFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
