// Package store persists the diagnostic session as a single JSON document
// and archives completed assessments in a SQLite history database.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/earoncy/cyberdiag/internal/catalog"
	"github.com/earoncy/cyberdiag/internal/filelock"
	"github.com/earoncy/cyberdiag/internal/session"
)

// Logger is the subset of the console logger the store needs.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Store reads and writes the session document at a fixed path. Writes are
// atomic and guarded by a sibling lock file.
type Store struct {
	path string
	cat  *catalog.Catalog
	log  Logger
}

// New creates a Store persisting to path.
func New(path string, cat *catalog.Catalog, log Logger) *Store {
	return &Store{path: path, cat: cat, log: log}
}

// Path returns the session document path.
func (s *Store) Path() string {
	return s.path
}

// Load rehydrates the persisted session. A missing document is a valid
// fresh start and yields (nil, nil). A corrupt document is logged and also
// treated as a fresh start; it is never surfaced as a failure.
func (s *Store) Load() (*session.Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session document: %w", err)
	}

	sess := &session.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		s.log.Warnf("session document %s is corrupt, starting fresh: %v", s.path, err)
		return nil, nil
	}
	sess.Bind(s.cat)
	return sess, nil
}

// Save writes the full session as one JSON document, atomically and under
// the file lock.
func (s *Store) Save(sess *session.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.SaveDocument(data)
}

// SaveDocument writes an already-encoded session document. The debounced
// saver encodes on the mutating goroutine and hands the bytes over here.
func (s *Store) SaveDocument(data []byte) error {
	lock := filelock.New(s.path + ".lock")
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	if err := filelock.WriteAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session document: %w", err)
	}
	s.log.Debugf("session saved to %s", s.path)
	return nil
}

// Reset deletes the persisted document. A document that never existed is
// not an error.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session document: %w", err)
	}
	return nil
}
