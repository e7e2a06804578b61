// Package memory provides in-process implementations of the repository
// interfaces. It backs the server's memory storage mode and the tests.
package memory

import (
	"sync"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/google/uuid"
)

// Store holds every table behind one lock.
type Store struct {
	mu sync.RWMutex

	users         map[string]*repository.User
	refreshTokens map[string]*repository.RefreshToken
	ratings       map[string]*repository.Rating
	requests      map[string]*swapRow
	notifications []*repository.Notification

	seq int64
	now func() time.Time
}

type swapRow struct {
	repository.SwapRequest
	seq int64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]*repository.User),
		refreshTokens: make(map[string]*repository.RefreshToken),
		ratings:       make(map[string]*repository.Rating),
		requests:      make(map[string]*swapRow),
		now:           time.Now,
	}
}

// SetClock replaces the time source.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		UserRepo:         &userRepo{s},
		RatingRepo:       &ratingRepo{s},
		NotificationRepo: &notificationRepo{s},
		SwapRequestRepo:  &swapRequestRepo{s},
	}
}

func newID() string {
	return uuid.New().String()
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
