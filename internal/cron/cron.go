package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/robfig/cron/v3"
)

const (
	inactiveAfter      = 30 * time.Minute
	digestAfter        = 72 * time.Hour
	notificationMaxAge = 30 * 24 * time.Hour
	jobTimeout         = 2 * time.Minute
)

// DigestSender reminds a member of requests waiting on them.
// *notification.Service satisfies it.
type DigestSender interface {
	PendingDigest(ctx context.Context, summary repository.PendingSummary, now time.Time) error
}

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron             *cron.Cron
	userRepo         repository.UserRepository
	requestRepo      repository.SwapRequestRepository
	notificationRepo repository.NotificationRepository
	digests          DigestSender
	logger           *slog.Logger
	now              func() time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(repos *repository.Repositories, digests DigestSender, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:             cron.New(),
		userRepo:         repos.UserRepo,
		requestRepo:      repos.SwapRequestRepo,
		notificationRepo: repos.NotificationRepo,
		digests:          digests,
		logger:           logger.With(slog.String("component", "cron")),
		now:              time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func(context.Context)
	}{
		// Every hour - expired refresh tokens
		{"0 * * * *", "refresh_token_cleanup", s.CleanupRefreshTokens},
		// Every 15 minutes - members idle for 30 minutes go offline
		{"*/15 * * * *", "inactive_status", s.UpdateInactiveStatus},
		// Every day at 9 AM - pending request digest
		{"0 9 * * *", "pending_digest", s.SendPendingDigests},
		// Every Sunday at midnight - old read notifications
		{"0 0 * * 0", "notification_cleanup", s.CleanupNotifications},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, s.wrap(job.name, job.run)); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler_started", slog.Int("jobs", len(jobs)))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler_stopped")
}

func (s *Scheduler) wrap(name string, run func(context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		start := time.Now()
		s.logger.Debug("job_started", slog.String("job", name))
		run(ctx)
		s.logger.Debug("job_finished", slog.String("job", name), slog.Duration("elapsed", time.Since(start)))
	}
}

// CleanupRefreshTokens deletes refresh tokens past their expiry.
func (s *Scheduler) CleanupRefreshTokens(ctx context.Context) {
	n, err := s.userRepo.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		s.logger.Error("refresh_token_cleanup_failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		s.logger.Info("refresh_tokens_deleted", slog.Int("count", n))
	}
}

// UpdateInactiveStatus marks members without recent activity offline.
func (s *Scheduler) UpdateInactiveStatus(ctx context.Context) {
	n, err := s.userRepo.UpdateStatusForInactive(ctx, inactiveAfter)
	if err != nil {
		s.logger.Error("inactive_status_update_failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		s.logger.Info("members_marked_offline", slog.Int("count", n))
	}
}

// SendPendingDigests reminds each member with requests pending for more than
// three days.
func (s *Scheduler) SendPendingDigests(ctx context.Context) {
	if s.digests == nil {
		return
	}
	now := s.now()
	summaries, err := s.requestRepo.PendingOlderThan(ctx, now.Add(-digestAfter))
	if err != nil {
		s.logger.Error("pending_digest_query_failed", slog.Any("error", err))
		return
	}

	sent := 0
	for _, summary := range summaries {
		if err := s.digests.PendingDigest(ctx, summary, now); err != nil {
			s.logger.Error("pending_digest_failed", slog.String("user_id", summary.UserID), slog.Any("error", err))
			continue
		}
		sent++
	}
	if sent > 0 {
		s.logger.Info("pending_digests_sent", slog.Int("count", sent))
	}
}

// CleanupNotifications removes read notifications older than 30 days.
func (s *Scheduler) CleanupNotifications(ctx context.Context) {
	n, err := s.notificationRepo.DeleteOlderThan(ctx, s.now().Add(-notificationMaxAge), true)
	if err != nil {
		s.logger.Error("notification_cleanup_failed", slog.Any("error", err))
		return
	}
	if n > 0 {
		s.logger.Info("notifications_deleted", slog.Int("count", n))
	}
}
