package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/earoncy/cyberdiag/internal/session"
)

// ErrSaverClosed is returned by Flush once Close has detached the saver.
var ErrSaverClosed = errors.New("saver closed")

// Saver debounces session writes: every mutation cancels the pending write
// and schedules a new one, so rapid successive edits coalesce into a single
// document write. Notify runs on the mutating goroutine and captures the
// serialized document there; the timer goroutine only ever sees that byte
// snapshot, never the live session, so a timer firing concurrently with the
// next mutation cannot race on the session maps.
type Saver struct {
	mu      sync.Mutex
	store   *Store
	sess    *session.Session
	delay   time.Duration
	timer   *time.Timer
	pending []byte
	closed  bool
	log     Logger
}

// NewSaver wires a debounced saver to the session's change notifications.
func NewSaver(st *Store, sess *session.Session, delay time.Duration, log Logger) *Saver {
	s := &Saver{store: st, sess: sess, delay: delay, log: log}
	sess.OnChange(s.Notify)
	return s
}

// Notify snapshots the session, cancels any pending write and schedules a
// fresh one for the snapshot.
func (s *Saver) Notify() {
	data, err := json.MarshalIndent(s.sess, "", "  ")
	if err != nil {
		s.log.Warnf("encode session for background save: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.write)
}

func (s *Saver) write() {
	s.mu.Lock()
	data := s.pending
	if s.closed || data == nil {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.pending = nil
	s.mu.Unlock()

	if err := s.store.SaveDocument(data); err != nil {
		s.log.Warnf("background save failed: %v", err)
	}
}

// Flush cancels any pending write and persists the current session state
// immediately. Flush must run on the mutating goroutine, like Notify.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return ErrSaverClosed
	}
	return s.store.Save(s.sess)
}

// Close cancels any pending write without persisting. Used on teardown and
// before a reset so a stale timer cannot resurrect discarded state.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.sess.OnChange(nil)
}
