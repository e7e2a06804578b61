package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/config"
	"github.com/Marga-Ghale/skill-swap/internal/db"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/repository/memory"
)

type recordedEvents struct {
	mu       sync.Mutex
	received []string
	decided  []string
}

func (e *recordedEvents) RequestReceived(_ context.Context, req *repository.SwapRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.received = append(e.received, req.ID)
	return nil
}

func (e *recordedEvents) RequestDecided(_ context.Context, req *repository.SwapRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.decided = append(e.decided, req.ID+":"+req.Status)
	return nil
}

type countingRecorder struct {
	created int
	counts  map[string]int
}

func (r *countingRecorder) RecordCreated() { r.created++ }

func (r *countingRecorder) RecordDecision(status string) {
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[status]++
}

type fixture struct {
	store     *memory.Store
	repos     *repository.Repositories
	services  *Services
	events    *recordedEvents
	decisions *countingRecorder
	redis     *miniredis.Miniredis
	cfg       *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := db.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(cache.Close)

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      1,
		RefreshExpiry:  7,
		MemberCacheTTL: time.Minute,
	}
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		repos:     store.Repositories(),
		events:    &recordedEvents{},
		decisions: &countingRecorder{},
		redis:     mr,
		cfg:       cfg,
	}
	f.services = NewServices(&ServiceDeps{
		Config:   cfg,
		Repos:    f.repos,
		Cache:    cache,
		Events:   f.events,
		Recorder: f.decisions,
	})
	return f
}

// member creates a public member with the given offered and wanted skills.
func (f *fixture) member(t *testing.T, name string, offered, wanted []string) *repository.User {
	t.Helper()
	u := &repository.User{
		Email:         name + "@example.com",
		Username:      name,
		Name:          name,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		IsPublic:      true,
	}
	require.NoError(t, f.repos.UserRepo.Create(context.Background(), u))
	return u
}
