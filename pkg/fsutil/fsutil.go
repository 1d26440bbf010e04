// Package fsutil provides filesystem safety primitives for revfix: reads
// that capture a content fingerprint, external-modification detection,
// atomic writes, and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")

	// ErrModified indicates the file changed on disk between the read that
	// offsets were computed from and the attempted write.
	ErrModified = errors.New("file modified externally")
)

// Fingerprint captures the state of a file at read time. It is compared
// again immediately before a write so that edits computed against a stale
// snapshot are refused instead of clobbering someone else's change.
type Fingerprint struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// Read reads a file and returns its content with a Fingerprint.
func Read(ctx context.Context, path string) ([]byte, *Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, categorize(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, categorize(path, err)
	}

	fp := &Fingerprint{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}

	return content, fp, nil
}

// Modified reports whether the file on disk differs from the fingerprint.
// A quick size/mtime comparison short-circuits; on a match the content is
// re-read and hashed, which also catches mtime-preserving edits.
func Modified(fp *Fingerprint) (bool, error) {
	if fp == nil {
		return false, errors.New("nil fingerprint")
	}

	stat, err := os.Stat(fp.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", fp.Path, err)
	}

	if stat.Size() != fp.Size || !stat.ModTime().Equal(fp.ModTime) {
		return true, nil
	}

	content, err := os.ReadFile(fp.Path)
	if err != nil {
		return false, categorize(fp.Path, err)
	}

	return sha256.Sum256(content) != fp.Hash, nil
}

func categorize(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("access %s: %w", path, err)
	}
}
