package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestUserCopiesAreIsolated(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	u := &repository.User{Email: "a@example.com", Username: "a", Name: "A", SkillsOffered: []string{"Go"}, IsPublic: true}
	require.NoError(t, repos.UserRepo.Create(ctx, u))

	u.SkillsOffered[0] = "mutated"
	got, err := repos.UserRepo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.SkillsOffered)

	got.Name = "B"
	again, _ := repos.UserRepo.FindByID(ctx, u.ID)
	assert.Equal(t, "A", again.Name)

	missing, err := repos.UserRepo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSwapRequestsOrderAndDecide(t *testing.T) {
	s := NewStore()
	c := &clock{t: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	s.SetClock(c.now)
	repos := s.Repositories()
	ctx := context.Background()

	from := &repository.User{Email: "f@example.com", Username: "f", Name: "From"}
	to := &repository.User{Email: "t@example.com", Username: "t", Name: "To"}
	require.NoError(t, repos.UserRepo.Create(ctx, from))
	require.NoError(t, repos.UserRepo.Create(ctx, to))

	first := &repository.SwapRequest{FromUserID: from.ID, ToUserID: to.ID, OfferedSkill: "React", RequestedSkill: "Python"}
	second := &repository.SwapRequest{FromUserID: from.ID, ToUserID: to.ID, OfferedSkill: "React", RequestedSkill: "Go"}
	require.NoError(t, repos.SwapRequestRepo.Create(ctx, first))
	require.NoError(t, repos.SwapRequestRepo.Create(ctx, second))

	dup := &repository.SwapRequest{FromUserID: from.ID, ToUserID: to.ID, OfferedSkill: "React", RequestedSkill: "Python"}
	assert.ErrorIs(t, repos.SwapRequestRepo.Create(ctx, dup), repository.ErrDuplicatePending)

	incoming, err := repos.SwapRequestRepo.FindIncoming(ctx, to.ID, "")
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, second.ID, incoming[0].ID, "same timestamp falls back to insertion order, newest first")
	assert.Equal(t, "From", incoming[0].FromName)
	assert.Equal(t, "To", incoming[0].ToName)

	found, err := repos.SwapRequestRepo.FindPending(ctx, from.ID, to.ID, "react", "PYTHON")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	ok, err := repos.SwapRequestRepo.Decide(ctx, first.ID, types.RequestAccepted)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repos.SwapRequestRepo.Decide(ctx, first.ID, types.RequestRejected)
	require.NoError(t, err)
	assert.False(t, ok, "only pending requests can be decided")

	accepted, err := repos.SwapRequestRepo.HasAcceptedBetween(ctx, to.ID, from.ID)
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestPendingOlderThan(t *testing.T) {
	s := NewStore()
	repos := s.Repositories()
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	s.Insert(repository.SwapRequest{FromUserID: "a", ToUserID: "u2", Status: types.RequestPending, CreatedAt: base})
	s.Insert(repository.SwapRequest{FromUserID: "b", ToUserID: "u1", Status: types.RequestPending, CreatedAt: base.Add(time.Hour)})
	s.Insert(repository.SwapRequest{FromUserID: "c", ToUserID: "u1", Status: types.RequestPending, CreatedAt: base.Add(2 * time.Hour)})
	s.Insert(repository.SwapRequest{FromUserID: "d", ToUserID: "u1", Status: types.RequestAccepted, CreatedAt: base})
	s.Insert(repository.SwapRequest{FromUserID: "e", ToUserID: "u3", Status: types.RequestPending, CreatedAt: base.Add(48 * time.Hour)})

	got, err := repos.SwapRequestRepo.PendingOlderThan(context.Background(), base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []repository.PendingSummary{
		{UserID: "u1", Count: 2, Oldest: base.Add(time.Hour)},
		{UserID: "u2", Count: 1, Oldest: base},
	}, got)
}

func TestInactiveAndExpiredSweeps(t *testing.T) {
	s := NewStore()
	c := &clock{t: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	s.SetClock(c.now)
	repos := s.Repositories()
	ctx := context.Background()

	u := &repository.User{Email: "a@example.com", Username: "a", Name: "A"}
	require.NoError(t, repos.UserRepo.Create(ctx, u))
	require.NoError(t, repos.UserRepo.SaveRefreshToken(ctx, &repository.RefreshToken{Token: "t1", UserID: u.ID, ExpiresAt: c.t.Add(time.Hour)}))

	c.t = c.t.Add(2 * time.Hour)
	n, err := repos.UserRepo.UpdateStatusForInactive(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	got, _ := repos.UserRepo.FindByID(ctx, u.ID)
	assert.Equal(t, types.UserOffline, got.Status)

	n, err = repos.UserRepo.DeleteExpiredRefreshTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNotificationCleanup(t *testing.T) {
	s := NewStore()
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.SetClock(c.now)
	repos := s.Repositories()
	ctx := context.Background()

	read := &repository.Notification{UserID: "u", Title: "old read"}
	unread := &repository.Notification{UserID: "u", Title: "old unread"}
	require.NoError(t, repos.NotificationRepo.Create(ctx, read))
	require.NoError(t, repos.NotificationRepo.Create(ctx, unread))
	ok, err := repos.NotificationRepo.MarkAsRead(ctx, read.ID, "u")
	require.NoError(t, err)
	require.True(t, ok)
	ok, _ = repos.NotificationRepo.MarkAsRead(ctx, unread.ID, "someone-else")
	assert.False(t, ok)

	removed, err := repos.NotificationRepo.DeleteOlderThan(ctx, c.t.Add(time.Hour), true)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	left, err := repos.NotificationRepo.FindByUserID(ctx, "u", false)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "old unread", left[0].Title)
}
