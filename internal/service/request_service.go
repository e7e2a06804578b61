package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// NewSwapRequest is a proposal from the caller to another member.
type NewSwapRequest struct {
	TargetUserID   string
	OfferedSkill   string
	RequestedSkill string
	Message        string
}

// ============================================
// Request Service
// ============================================

type RequestService interface {
	// ListIncoming returns requests addressed to userID, newest first. An
	// empty status or "all" returns every status.
	ListIncoming(ctx context.Context, userID, status string) ([]*repository.SwapRequest, error)
	ListSent(ctx context.Context, userID string) ([]*repository.SwapRequest, error)
	Create(ctx context.Context, fromUserID string, input NewSwapRequest) (*repository.SwapRequest, error)
	// Decide accepts or rejects a pending request addressed to userID.
	// Repeating the recorded decision succeeds without side effects; the
	// opposite decision fails with ErrRequestDecided.
	Decide(ctx context.Context, userID, requestID, status string) (*repository.SwapRequest, error)
}

type requestService struct {
	requestRepo repository.SwapRequestRepository
	userRepo    repository.UserRepository
	members     MemberService
	events      SwapEvents
	recorder    SwapRecorder
	logger      *slog.Logger
}

func NewRequestService(
	requestRepo repository.SwapRequestRepository,
	userRepo repository.UserRepository,
	members MemberService,
	events SwapEvents,
	recorder SwapRecorder,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		members:     members,
		events:      events,
		recorder:    recorder,
		logger:      slog.Default().With(slog.String("component", "requests")),
	}
}

func (s *requestService) ListIncoming(ctx context.Context, userID, status string) ([]*repository.SwapRequest, error) {
	if status == types.AvailabilityAll {
		status = ""
	}
	if status != "" && !types.IsValidRequestStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.requestRepo.FindIncoming(ctx, userID, status)
}

func (s *requestService) ListSent(ctx context.Context, userID string) ([]*repository.SwapRequest, error) {
	return s.requestRepo.FindSent(ctx, userID)
}

func (s *requestService) Create(ctx context.Context, fromUserID string, input NewSwapRequest) (*repository.SwapRequest, error) {
	targetID := strings.TrimSpace(input.TargetUserID)
	if targetID == fromUserID {
		return nil, ErrSelfRequest
	}
	message := strings.TrimSpace(input.Message)
	if utf8.RuneCountInString(message) > types.MaxMessageLength {
		return nil, fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, types.MaxMessageLength)
	}

	sender, err := s.userRepo.FindByID(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("find sender: %w", err)
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}
	target, err := s.members.Get(ctx, fromUserID, targetID)
	if err != nil {
		return nil, err
	}

	offered, ok := findSkill(sender.SkillsOffered, input.OfferedSkill)
	if !ok {
		return nil, ErrSkillNotOffered
	}
	requested, ok := findSkill(target.SkillsOffered, input.RequestedSkill)
	if !ok {
		return nil, ErrSkillNotAvailable
	}

	existing, err := s.requestRepo.FindPending(ctx, sender.ID, target.ID, offered, requested)
	if err != nil {
		return nil, fmt.Errorf("check pending requests: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	req := &repository.SwapRequest{
		FromUserID:     sender.ID,
		FromName:       sender.Name,
		FromAvatar:     sender.Avatar,
		ToUserID:       target.ID,
		ToName:         target.Name,
		ToAvatar:       target.Avatar,
		OfferedSkill:   offered,
		RequestedSkill: requested,
	}
	if message != "" {
		req.Message = &message
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("create swap request: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordCreated()
	}
	s.logger.Info("swap_request_created",
		slog.String("request_id", req.ID),
		slog.String("from", req.FromUserID),
		slog.String("to", req.ToUserID))

	if s.events != nil {
		if err := s.events.RequestReceived(ctx, req); err != nil {
			s.logger.Warn("swap_request_notify_failed", slog.String("request_id", req.ID), slog.Any("error", err))
		}
	}
	return req, nil
}

func (s *requestService) Decide(ctx context.Context, userID, requestID, status string) (*repository.SwapRequest, error) {
	if !types.IsDecision(status) {
		return nil, fmt.Errorf("%w: %q is not a decision", ErrInvalidInput, status)
	}

	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find swap request: %w", err)
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.ToUserID != userID {
		if req.FromUserID == userID {
			return nil, ErrNotRecipient
		}
		return nil, ErrRequestNotFound
	}

	if req.Status != types.RequestPending {
		return s.repeated(req, status)
	}

	decided, err := s.requestRepo.Decide(ctx, requestID, status)
	if err != nil {
		return nil, fmt.Errorf("decide swap request: %w", err)
	}
	// Reload for decided_at, and for the winning status when a concurrent
	// decision got there first.
	current, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("reload swap request: %w", err)
	}
	if current == nil {
		return nil, ErrRequestNotFound
	}
	if !decided {
		return s.repeated(current, status)
	}

	if status == types.RequestAccepted {
		if err := s.userRepo.IncrementSwaps(ctx, current.FromUserID, current.ToUserID); err != nil {
			s.logger.Error("increment_swaps_failed", slog.String("request_id", requestID), slog.Any("error", err))
		}
		s.members.Invalidate(ctx)
	}
	if s.recorder != nil {
		s.recorder.RecordDecision(status)
	}

	s.logger.Info("swap_request_decided", slog.String("request_id", requestID), slog.String("status", status))

	if s.events != nil {
		if err := s.events.RequestDecided(ctx, current); err != nil {
			s.logger.Warn("swap_decision_notify_failed", slog.String("request_id", requestID), slog.Any("error", err))
		}
	}
	return current, nil
}

func (s *requestService) repeated(req *repository.SwapRequest, status string) (*repository.SwapRequest, error) {
	if req.Status == status {
		return req, nil
	}
	return nil, fmt.Errorf("%w: request is %s", ErrRequestDecided, req.Status)
}

// findSkill returns the stored spelling of skill from skills, ignoring case
// and surrounding space.
func findSkill(skills []string, skill string) (string, bool) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return "", false
	}
	for _, s := range skills {
		if strings.EqualFold(s, skill) {
			return s, true
		}
	}
	return "", false
}
