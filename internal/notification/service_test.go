package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/email"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/repository/memory"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

type push struct {
	kind   string
	userID string
}

type fakeBroadcaster struct {
	pushes []push
}

func (b *fakeBroadcaster) SendNotification(userID string, _ map[string]any) {
	b.pushes = append(b.pushes, push{"notification", userID})
}

func (b *fakeBroadcaster) SendNotificationCount(userID string, _, _ int) {
	b.pushes = append(b.pushes, push{"count", userID})
}

func (b *fakeBroadcaster) SwapRequestReceived(recipientID string, _ map[string]any) {
	b.pushes = append(b.pushes, push{"received", recipientID})
}

func (b *fakeBroadcaster) SwapRequestDecided(senderID string, accepted bool, _ map[string]any) {
	kind := "rejected"
	if accepted {
		kind = "accepted"
	}
	b.pushes = append(b.pushes, push{kind, senderID})
}

type queued struct {
	to       []string
	subject  string
	template string
	data     any
}

type fakeMailer struct {
	sent []queued
}

func (m *fakeMailer) Enqueue(to []string, subject, templateName string, data any) bool {
	m.sent = append(m.sent, queued{to, subject, templateName, data})
	return true
}

func setup(t *testing.T) (*Service, *repository.Repositories, *fakeBroadcaster, *fakeMailer, *repository.User, *repository.User) {
	t.Helper()
	repos := memory.NewStore().Repositories()
	ctx := context.Background()
	sarah := &repository.User{Email: "sarah@example.com", Username: "sarah", Name: "Sarah Chen", IsPublic: true}
	michael := &repository.User{Email: "michael@example.com", Username: "michael", Name: "Michael Rodriguez", IsPublic: true}
	require.NoError(t, repos.UserRepo.Create(ctx, sarah))
	require.NoError(t, repos.UserRepo.Create(ctx, michael))

	svc := NewService(repos.NotificationRepo, repos.UserRepo, "http://localhost:5173", slog.New(slog.NewTextHandler(io.Discard, nil)))
	b, m := &fakeBroadcaster{}, &fakeMailer{}
	svc.SetBroadcaster(b)
	svc.SetMailer(m)
	return svc, repos, b, m, sarah, michael
}

func TestRequestReceived(t *testing.T) {
	svc, repos, b, m, sarah, michael := setup(t)
	ctx := context.Background()
	msg := "Weekends work for me"
	req := &repository.SwapRequest{
		ID: "r1", FromUserID: sarah.ID, FromName: sarah.Name, ToUserID: michael.ID, ToName: michael.Name,
		OfferedSkill: "React", RequestedSkill: "Python", Message: &msg, Status: types.RequestPending,
	}

	require.NoError(t, svc.RequestReceived(ctx, req))

	assert.Equal(t, []push{{"received", michael.ID}, {"notification", michael.ID}, {"count", michael.ID}}, b.pushes)

	stored, err := repos.NotificationRepo.FindByUserID(ctx, michael.ID, false)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, TypeSwapRequestReceived, stored[0].Type)
	assert.Equal(t, "Sarah Chen wants to trade React for Python", stored[0].Message)

	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"michael@example.com"}, m.sent[0].to)
	assert.Equal(t, email.TemplateRequestReceived, m.sent[0].template)
	data := m.sent[0].data.(email.RequestReceivedData)
	assert.Equal(t, "Michael Rodriguez", data.RecipientName)
	assert.Equal(t, msg, data.Message)
	assert.Equal(t, "http://localhost:5173/requests", data.RequestsURL)
}

func TestRequestDecided(t *testing.T) {
	svc, repos, b, m, sarah, michael := setup(t)
	ctx := context.Background()
	req := &repository.SwapRequest{
		ID: "r1", FromUserID: sarah.ID, FromName: sarah.Name, ToUserID: michael.ID, ToName: michael.Name,
		OfferedSkill: "React", RequestedSkill: "Python", Status: types.RequestAccepted,
	}

	require.NoError(t, svc.RequestDecided(ctx, req))
	req.Status = types.RequestRejected
	require.NoError(t, svc.RequestDecided(ctx, req))

	assert.Equal(t, push{"accepted", sarah.ID}, b.pushes[0])
	assert.Equal(t, push{"rejected", sarah.ID}, b.pushes[3])

	stored, err := repos.NotificationRepo.FindByUserID(ctx, sarah.ID, false)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, TypeSwapRequestRejected, stored[0].Type, "newest first")
	assert.Equal(t, TypeSwapRequestAccepted, stored[1].Type)

	require.Len(t, m.sent, 2)
	assert.True(t, m.sent[0].data.(email.RequestDecidedData).Accepted)
	assert.Equal(t, "Michael Rodriguez declined your skill swap request", m.sent[1].subject)
}

func TestPendingDigest(t *testing.T) {
	svc, repos, _, m, _, michael := setup(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	err := svc.PendingDigest(ctx, repository.PendingSummary{
		UserID: michael.ID, Count: 2, Oldest: now.Add(-4 * 24 * time.Hour),
	}, now)
	require.NoError(t, err)

	_, unread, err := repos.NotificationRepo.CountByUserID(ctx, michael.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.Len(t, m.sent, 1)
	data := m.sent[0].data.(email.PendingDigestData)
	assert.Equal(t, 2, data.Count)
	assert.Equal(t, 4, data.OldestDays)
}

func TestWithoutMailerOrBroadcaster(t *testing.T) {
	repos := memory.NewStore().Repositories()
	svc := NewService(repos.NotificationRepo, repos.UserRepo, "", nil)
	req := &repository.SwapRequest{ID: "r1", FromUserID: "a", ToUserID: "b", Status: types.RequestPending}
	require.NoError(t, svc.RequestReceived(context.Background(), req))

	total, _, err := repos.NotificationRepo.CountByUserID(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
