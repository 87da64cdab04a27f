package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"checkers/internal/game"
	"checkers/internal/server/storage"

	"github.com/rs/zerolog/log"
)

const (
	MaxGames           = 100
	IdleGameTTL        = 2 * time.Hour
	SeatTokenTTL       = 24 * time.Hour
	CleanupJobInterval = 10 * time.Minute
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	ErrTooManyGames = errors.New("game limit reached")
	ErrInvalidSeat  = errors.New("invalid seat token")
)

// session is a registered game and the last time anyone touched it
type session struct {
	game    *game.Game
	touched time.Time
}

// Service owns all live games. Every engine call happens under mu, so a game
// is never driven from two goroutines at once.
type Service struct {
	games  map[string]*session
	mu     sync.RWMutex
	store  *storage.Store // nil if archiving disabled
	secret []byte
	waiter *WaitRegistry
	now    func() time.Time
}

// New creates a new service instance with optional storage
func New(store *storage.Store, secret []byte) *Service {
	return &Service{
		games:  make(map[string]*session),
		store:  store,
		secret: secret,
		waiter: NewWaitRegistry(),
		now:    time.Now,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GameCount returns the number of live games
func (s *Service) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// RegisterWait registers a client to wait until the game moves past version.
// Registration happens under the read lock so an action cannot bump the
// version between the check and the registration.
func (s *Service) RegisterWait(ctx context.Context, gameID string, version int) <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.games[gameID]
	if !ok {
		gone := make(chan struct{})
		close(gone)
		return gone
	}

	ch := s.waiter.RegisterWait(ctx, gameID, version)
	// Already stale: wake the waiter right away
	if current := sess.game.Version(); current != version {
		s.waiter.NotifyGame(gameID, current)
	}
	return ch
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, fmt.Errorf("wait registry: %w", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*session)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob periodically drops games nobody has touched for IdleGameTTL
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.cleanupIdle(); n > 0 {
				log.Info().Int("games", n).Msg("cleanup: removed idle games")
			}
		}
	}
}

func (s *Service) cleanupIdle() int {
	cutoff := s.now().Add(-IdleGameTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.games {
		if sess.touched.Before(cutoff) {
			s.waiter.RemoveGame(id)
			delete(s.games, id)
			removed++
		}
	}
	return removed
}
