package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/email"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// Notification types
const (
	TypeSwapRequestReceived = "SWAP_REQUEST_RECEIVED"
	TypeSwapRequestAccepted = "SWAP_REQUEST_ACCEPTED"
	TypeSwapRequestRejected = "SWAP_REQUEST_REJECTED"
	TypePendingDigest       = "PENDING_REQUESTS_DIGEST"
)

// Broadcaster pushes real-time events to connected members.
type Broadcaster interface {
	SendNotification(userID string, notification map[string]any)
	SendNotificationCount(userID string, total, unread int)
	SwapRequestReceived(recipientID string, request map[string]any)
	SwapRequestDecided(senderID string, accepted bool, request map[string]any)
}

// Mailer queues templated emails.
type Mailer interface {
	Enqueue(to []string, subject, templateName string, data any) bool
}

// Service records in-app notifications and fans them out over WebSocket and
// email. Broadcaster and mailer are optional.
type Service struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	broadcaster      Broadcaster
	mailer           Mailer
	frontendURL      string
	logger           *slog.Logger
}

func NewService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	frontendURL string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		frontendURL:      frontendURL,
		logger:           logger.With(slog.String("component", "notification")),
	}
}

func (s *Service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *Service) SetMailer(m Mailer) {
	s.mailer = m
}

// RequestPayload is the wire form of a swap request in real-time messages.
func RequestPayload(req *repository.SwapRequest) map[string]any {
	payload := map[string]any{
		"id": req.ID,
		"fromUser": map[string]any{
			"id":     req.FromUserID,
			"name":   req.FromName,
			"avatar": req.FromAvatar,
		},
		"toUserId":       req.ToUserID,
		"offeredSkill":   req.OfferedSkill,
		"requestedSkill": req.RequestedSkill,
		"status":         req.Status,
		"createdAt":      req.CreatedAt,
	}
	if req.Message != nil {
		payload["message"] = *req.Message
	}
	return payload
}

func (s *Service) store(ctx context.Context, n *repository.Notification) error {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.SendNotification(n.UserID, map[string]any{
			"id":        n.ID,
			"type":      n.Type,
			"title":     n.Title,
			"message":   n.Message,
			"data":      n.Data,
			"read":      n.Read,
			"createdAt": n.CreatedAt,
		})
		if total, unread, err := s.notificationRepo.CountByUserID(ctx, n.UserID); err == nil {
			s.broadcaster.SendNotificationCount(n.UserID, total, unread)
		}
	}
	return nil
}

func (s *Service) mail(ctx context.Context, userID, subject, templateName string, data func(*repository.User) any) {
	if s.mailer == nil || s.userRepo == nil {
		return
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil || user.Email == "" {
		s.logger.Debug("email_recipient_unavailable", slog.String("user_id", userID))
		return
	}
	s.mailer.Enqueue([]string{user.Email}, subject, templateName, data(user))
}

// RequestReceived tells the recipient about a new swap request.
func (s *Service) RequestReceived(ctx context.Context, req *repository.SwapRequest) error {
	if s.broadcaster != nil {
		s.broadcaster.SwapRequestReceived(req.ToUserID, RequestPayload(req))
	}

	err := s.store(ctx, &repository.Notification{
		UserID:  req.ToUserID,
		Type:    TypeSwapRequestReceived,
		Title:   "New Swap Request",
		Message: fmt.Sprintf("%s wants to trade %s for %s", req.FromName, req.OfferedSkill, req.RequestedSkill),
		Data: map[string]any{
			"requestId":  req.ID,
			"fromUserId": req.FromUserID,
			"action":     "view_requests",
		},
	})

	s.mail(ctx, req.ToUserID, "New skill swap request from "+req.FromName, email.TemplateRequestReceived,
		func(u *repository.User) any {
			data := email.RequestReceivedData{
				RecipientName:  u.Name,
				SenderName:     req.FromName,
				OfferedSkill:   req.OfferedSkill,
				RequestedSkill: req.RequestedSkill,
				RequestsURL:    s.frontendURL + "/requests",
			}
			if req.Message != nil {
				data.Message = *req.Message
			}
			return data
		})
	return err
}

// RequestDecided tells the sender their request was accepted or rejected.
func (s *Service) RequestDecided(ctx context.Context, req *repository.SwapRequest) error {
	accepted := req.Status == types.RequestAccepted
	if s.broadcaster != nil {
		s.broadcaster.SwapRequestDecided(req.FromUserID, accepted, RequestPayload(req))
	}

	n := &repository.Notification{
		UserID:  req.FromUserID,
		Type:    TypeSwapRequestRejected,
		Title:   "Swap Request Declined",
		Message: fmt.Sprintf("%s declined your request for %s", req.ToName, req.RequestedSkill),
		Data: map[string]any{
			"requestId": req.ID,
			"toUserId":  req.ToUserID,
			"action":    "view_profile",
		},
	}
	subject := req.ToName + " declined your skill swap request"
	if accepted {
		n.Type = TypeSwapRequestAccepted
		n.Title = "Swap Request Accepted"
		n.Message = fmt.Sprintf("%s accepted your request for %s", req.ToName, req.RequestedSkill)
		subject = req.ToName + " accepted your skill swap request"
	}
	err := s.store(ctx, n)

	s.mail(ctx, req.FromUserID, subject, email.TemplateRequestDecided, func(u *repository.User) any {
		return email.RequestDecidedData{
			SenderName:     u.Name,
			RecipientName:  req.ToName,
			OfferedSkill:   req.OfferedSkill,
			RequestedSkill: req.RequestedSkill,
			Accepted:       accepted,
			ProfileURL:     s.frontendURL + "/members/" + req.ToUserID,
		}
	})
	return err
}

// PendingDigest reminds a member of requests waiting on them.
func (s *Service) PendingDigest(ctx context.Context, summary repository.PendingSummary, now time.Time) error {
	days := int(now.Sub(summary.Oldest).Hours() / 24)
	err := s.store(ctx, &repository.Notification{
		UserID:  summary.UserID,
		Type:    TypePendingDigest,
		Title:   "Requests Waiting",
		Message: fmt.Sprintf("You have %d pending swap request(s)", summary.Count),
		Data:    map[string]any{"count": summary.Count, "action": "view_requests"},
	})

	s.mail(ctx, summary.UserID, "You have pending skill swap requests", email.TemplatePendingDigest,
		func(u *repository.User) any {
			return email.PendingDigestData{
				RecipientName: u.Name,
				Count:         summary.Count,
				OldestDays:    days,
				RequestsURL:   s.frontendURL + "/requests",
			}
		})
	return err
}
