package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrAuthUnavailable indicates credential acquisition itself failed or
// timed out. It is the only terminal error of a harvest run.
var ErrAuthUnavailable = errors.New("credential acquisition unavailable")

// Acquirer produces a fresh cookie+crumb pair. Implementations are
// external collaborators (HTTP bootstrap, browser automation); the Store
// only consumes their output.
type Acquirer interface {
	Acquire(ctx context.Context) (cookie, crumb string, err error)
}

// Store owns the current session and serializes acquisition.
type Store struct {
	acquirer Acquirer
	timeout  time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	current  Session
	nextID   uint64
	inflight chan struct{} // non-nil while an acquisition is running
}

// NewStore creates a Store. A zero acquireTimeout disables the per-attempt
// deadline.
func NewStore(acquirer Acquirer, acquireTimeout time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		acquirer: acquirer,
		timeout:  acquireTimeout,
		logger:   logger,
	}
}

// GetValid returns a session in state Valid, acquiring one if none is
// cached or the cached one is expired. Concurrent callers during an
// acquisition wait for it instead of starting their own. Acquisition
// failure surfaces ErrAuthUnavailable.
func (s *Store) GetValid(ctx context.Context) (Session, error) {
	for {
		s.mu.Lock()
		if s.current.State == StateValid {
			cur := s.current
			s.mu.Unlock()
			return cur, nil
		}

		if s.inflight != nil {
			wait := s.inflight
			s.mu.Unlock()
			select {
			case <-wait:
				continue // re-check the result
			case <-ctx.Done():
				return Session{}, ctx.Err()
			}
		}

		wait := make(chan struct{})
		s.inflight = wait
		s.mu.Unlock()

		sess, err := s.acquire(ctx)

		s.mu.Lock()
		s.inflight = nil
		if err == nil {
			s.current = sess
		}
		s.mu.Unlock()
		close(wait)

		if err != nil {
			return Session{}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
		}
		return sess, nil
	}
}

// Invalidate marks the given session expired. Idempotent: invalidating an
// already-expired or already-replaced session is a no-op.
func (s *Store) Invalidate(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.id != s.current.id || s.current.State != StateValid {
		return
	}
	s.current.State = StateExpired
	s.logger.Info("session invalidated",
		"session_age", time.Since(s.current.AcquiredAt),
	)
}

// acquire runs one acquisition attempt under the configured timeout.
func (s *Store) acquire(ctx context.Context) (Session, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	cookie, crumb, err := s.acquirer.Acquire(ctx)
	if err != nil {
		return Session{}, err
	}
	if cookie == "" || crumb == "" {
		return Session{}, errors.New("acquirer returned empty cookie or crumb")
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	s.logger.Info("session acquired", "duration", time.Since(start))

	return Session{
		Cookie:     cookie,
		Crumb:      crumb,
		AcquiredAt: time.Now(),
		State:      StateValid,
		id:         id,
	}, nil
}
