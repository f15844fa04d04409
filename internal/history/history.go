// Package history persists recently accepted phrases so the interactive
// prompt can offer them again. State lives in a single JSON file guarded by
// a cross-process file lock.
package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	// FileName is the history file name inside the cache directory.
	FileName = "history.json"

	// MaxEntries bounds the file; older entries are discarded.
	MaxEntries = 50
)

// LockTimeout is the maximum time to wait for acquiring the file lock.
// If exceeded, operations proceed without locking (fail-open) to avoid CLI
// hangs: losing one history entry to a race is cheaper than a stuck prompt.
const LockTimeout = 100 * time.Millisecond

// Entry is one accepted phrase with its resolution.
type Entry struct {
	Phrase     string    `json:"phrase"`
	Natural    string    `json:"natural"`
	Date       time.Time `json:"date"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// Store reads and writes the history file.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the full path to the history file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, ".lock")
}

// acquireLock obtains an exclusive lock on the history directory. A nil
// return with nil error means the lock timed out and the caller proceeds
// unlocked.
func (s *Store) acquireLock() (*flock.Flock, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, err
	}

	fl := flock.New(s.lockPath())

	ctx, cancel := context.WithTimeout(context.Background(), LockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, err
	}
	if !locked {
		return nil, nil
	}
	return fl, nil
}

func release(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}

// Recent returns up to n entries, most recent first.
func (s *Store) Recent(n int) ([]Entry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Add prepends an entry, dropping any earlier entry for the same phrase and
// trimming to MaxEntries.
func (s *Store) Add(e Entry) error {
	fl, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer release(fl)

	entries, err := s.load()
	if err != nil {
		return err
	}

	deduped := make([]Entry, 0, len(entries)+1)
	deduped = append(deduped, e)
	for _, old := range entries {
		if old.Phrase != e.Phrase {
			deduped = append(deduped, old)
		}
	}
	if len(deduped) > MaxEntries {
		deduped = deduped[:MaxEntries]
	}
	return s.save(deduped)
}

// Clear removes the history file.
func (s *Store) Clear() error {
	fl, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer release(fl)

	err = os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupted file: start over rather than wedging every command.
		return nil, nil
	}
	return entries, nil
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	// Atomic replace so a crash never leaves a half-written file.
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path())
}
