package apply

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/revfix/pkg/fsutil"
)

// DocumentStore is the file-access collaborator boundary. The orchestrator
// is agnostic to whether documents live in an editor buffer, a test fake,
// or the filesystem.
type DocumentStore interface {
	// ReadDocument returns the current content of the document at path.
	ReadDocument(ctx context.Context, path string) ([]byte, error)

	// WriteDocument persists content to the document at path.
	WriteDocument(ctx context.Context, path string, content []byte) error
}

// FSStore is a filesystem-backed DocumentStore with write safety: every
// read captures a content fingerprint, and a write refuses to proceed if
// the file changed on disk since that read. Writes are atomic and
// optionally preceded by a sidecar backup.
type FSStore struct {
	// Backup enables a one-time sidecar backup before the first write to
	// each file.
	Backup bool

	mu    sync.Mutex
	reads map[string]*fsutil.Fingerprint
}

// NewFSStore creates a filesystem store.
func NewFSStore(backup bool) *FSStore {
	return &FSStore{
		Backup: backup,
		reads:  make(map[string]*fsutil.Fingerprint),
	}
}

// ReadDocument reads the file and remembers its fingerprint for the
// modification check on the next write.
func (s *FSStore) ReadDocument(ctx context.Context, path string) ([]byte, error) {
	content, fp, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.reads[path] = fp
	s.mu.Unlock()

	return content, nil
}

// WriteDocument persists content atomically. If the file changed on disk
// since the last ReadDocument, the write is refused with fsutil.ErrModified
// so that offsets computed against the stale snapshot never clobber the
// newer content.
func (s *FSStore) WriteDocument(ctx context.Context, path string, content []byte) error {
	s.mu.Lock()
	fp := s.reads[path]
	s.mu.Unlock()

	var mode = fsutil.DefaultFileMode
	if fp != nil {
		changed, err := fsutil.Modified(fp)
		if err != nil {
			return fmt.Errorf("check modification: %w", err)
		}
		if changed {
			return fmt.Errorf("%w: %s", fsutil.ErrModified, path)
		}
		mode = fp.Mode
	}

	if s.Backup {
		if _, err := fsutil.CreateBackup(ctx, path); err != nil {
			return err
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, content, mode); err != nil {
		return err
	}

	// The remembered fingerprint is stale after our own write.
	s.mu.Lock()
	delete(s.reads, path)
	s.mu.Unlock()

	return nil
}
