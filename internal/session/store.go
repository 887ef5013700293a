package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/microservices-console/internal/application"
)

// Store keeps one Controller per browser page session. Each controller runs
// its start-up sequence exactly once, on first use. At most max sessions are
// held; opening one more evicts the least recently seen.
type Store struct {
	deps   application.Dependencies
	ttl    time.Duration
	max    int
	logger *logrus.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	ctrl     *application.Controller
	once     sync.Once
	lastSeen time.Time
}

func NewStore(deps application.Dependencies, idleTTL time.Duration, maxSessions int, logger *logrus.Logger) *Store {
	return &Store{
		deps:    deps,
		ttl:     idleTTL,
		max:     maxSessions,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// NewID issues a session id for a browser that has none.
func NewID() string { return uuid.NewString() }

// ValidID reports whether id has the shape NewID issues.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Transient returns a controller that is never stored and never initialised.
// It serves requests that do not carry a session cookie yet.
func (s *Store) Transient() *application.Controller {
	return application.NewController(s.deps, "")
}

// Known reports whether id names a live session.
func (s *Store) Known(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// Acquire returns the controller for id, opening the session when it is not
// live. opened is true when this call created it. Callers pass ids that
// satisfy ValidID.
func (s *Store) Acquire(ctx context.Context, id string) (ctrl *application.Controller, opened bool) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok {
		if s.max > 0 && len(s.entries) >= s.max {
			s.evictOldestLocked()
		}
		e = &entry{ctrl: application.NewController(s.deps, id)}
		s.entries[id] = e
		s.logger.WithField("session", id).Debug("page session opened")
	}
	e.lastSeen = s.now()
	s.mu.Unlock()

	e.once.Do(func() { e.ctrl.Init(ctx) })
	return e.ctrl, !ok
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.entries {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
		s.logger.WithField("session", oldestID).Debug("page session evicted")
	}
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.logger.WithFields(logrus.Fields{"expired": n, "live": s.Len()}).Info("page sessions expired")
			}
		}
	}
}
