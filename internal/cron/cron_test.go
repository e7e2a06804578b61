package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/repository/memory"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

type recordedDigests struct {
	summaries []repository.PendingSummary
}

func (d *recordedDigests) PendingDigest(_ context.Context, summary repository.PendingSummary, _ time.Time) error {
	d.summaries = append(d.summaries, summary)
	return nil
}

func newScheduler(t *testing.T, now time.Time) (*Scheduler, *memory.Store, *recordedDigests) {
	t.Helper()
	store := memory.NewStore()
	store.SetClock(func() time.Time { return now })
	digests := &recordedDigests{}
	s := NewScheduler(store.Repositories(), digests, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return now }
	return s, store, digests
}

func TestSendPendingDigests(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	s, store, digests := newScheduler(t, now)

	store.Insert(repository.SwapRequest{FromUserID: "a", ToUserID: "u1", Status: types.RequestPending, CreatedAt: now.Add(-96 * time.Hour)})
	store.Insert(repository.SwapRequest{FromUserID: "b", ToUserID: "u1", Status: types.RequestPending, CreatedAt: now.Add(-80 * time.Hour)})
	store.Insert(repository.SwapRequest{FromUserID: "c", ToUserID: "u2", Status: types.RequestPending, CreatedAt: now.Add(-time.Hour)})
	store.Insert(repository.SwapRequest{FromUserID: "d", ToUserID: "u3", Status: types.RequestRejected, CreatedAt: now.Add(-200 * time.Hour)})

	s.SendPendingDigests(context.Background())

	require.Len(t, digests.summaries, 1)
	assert.Equal(t, "u1", digests.summaries[0].UserID)
	assert.Equal(t, 2, digests.summaries[0].Count)
}

func TestSweeps(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, store, _ := newScheduler(t, start)
	repos := store.Repositories()
	ctx := context.Background()

	u := &repository.User{Email: "a@example.com", Username: "a", Name: "A"}
	require.NoError(t, repos.UserRepo.Create(ctx, u))
	require.NoError(t, repos.UserRepo.SaveRefreshToken(ctx, &repository.RefreshToken{Token: "old", UserID: u.ID, ExpiresAt: start.Add(time.Hour)}))
	n := &repository.Notification{UserID: u.ID, Title: "read"}
	require.NoError(t, repos.NotificationRepo.Create(ctx, n))
	_, err := repos.NotificationRepo.MarkAsRead(ctx, n.ID, u.ID)
	require.NoError(t, err)

	later := start.Add(31 * 24 * time.Hour)
	store.SetClock(func() time.Time { return later })
	s.now = func() time.Time { return later }

	s.CleanupRefreshTokens(ctx)
	s.UpdateInactiveStatus(ctx)
	s.CleanupNotifications(ctx)

	rt, err := repos.UserRepo.FindRefreshToken(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, rt)

	got, err := repos.UserRepo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, types.UserOffline, got.Status)

	total, _, err := repos.NotificationRepo.CountByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStartAndStop(t *testing.T) {
	s, _, _ := newScheduler(t, time.Now())
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 4)
	s.Stop()
}
