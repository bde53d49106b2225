package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/assembler"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/sections"
)

// session is one editing session. mu serializes every store operation;
// the store itself is not safe for concurrent use.
type session struct {
	id         string
	mu         sync.Mutex
	store      *sections.Store
	submitter  *assembler.Submitter
	lastAccess atomic.Int64 // unix nanoseconds
}

func (s *session) touch(now time.Time) {
	s.lastAccess.Store(now.UnixNano())
}

func (s *session) idleSince(cutoff time.Time) bool {
	return s.lastAccess.Load() < cutoff.UnixNano()
}

// sessionRegistry tracks open sessions by id. Sessions idle for longer than
// idleTTL are treated as gone and removed by the sweeper.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	idleTTL  time.Duration // zero disables expiry
	now      func() time.Time

	sweepTicker *time.Ticker
	sweepStop   chan struct{}
	stopOnce    sync.Once
}

func newSessionRegistry(idleTTL time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// create opens a session whose submits go through a Submitter built by newSubmitter
func (r *sessionRegistry) create(newSubmitter func(id string) *assembler.Submitter) *session {
	id := uuid.New().String()
	sess := &session{
		id:        id,
		store:     sections.New(),
		submitter: newSubmitter(id),
	}
	sess.touch(r.now())

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	observability.SessionsActive.Inc()
	return sess
}

// get returns the session and marks it used. An expired session is removed and reported as not found.
func (r *sessionRegistry) get(id string) (*session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}

	now := r.now()
	if r.idleTTL > 0 && sess.idleSince(now.Add(-r.idleTTL)) {
		r.mu.Lock()
		if r.sessions[id] == sess {
			delete(r.sessions, id)
			observability.SessionsActive.Dec()
		}
		r.mu.Unlock()
		return nil, &ErrSessionNotFound{SessionID: id}
	}

	sess.touch(now)
	return sess, nil
}

func (r *sessionRegistry) remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return &ErrSessionNotFound{SessionID: id}
	}
	delete(r.sessions, id)
	observability.SessionsActive.Dec()
	return nil
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweep removes sessions not used since cutoff and returns how many were removed
func (r *sessionRegistry) sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sess := range r.sessions {
		if sess.idleSince(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	observability.SessionsActive.Sub(float64(removed))
	return removed
}

// startSweeper removes idle sessions on every tick until stop is called
func (r *sessionRegistry) startSweeper(interval time.Duration) {
	if r.idleTTL <= 0 || interval <= 0 {
		return
	}
	r.sweepTicker = time.NewTicker(interval)
	r.sweepStop = make(chan struct{})

	go func() {
		for {
			select {
			case <-r.sweepTicker.C:
				r.sweep(r.now().Add(-r.idleTTL))
			case <-r.sweepStop:
				return
			}
		}
	}()
}

// stop stops the sweeper. Safe to call more than once.
func (r *sessionRegistry) stop() {
	r.stopOnce.Do(func() {
		if r.sweepTicker != nil {
			r.sweepTicker.Stop()
		}
		if r.sweepStop != nil {
			close(r.sweepStop)
		}
	})
}
