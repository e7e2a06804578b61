package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/db"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/shopspring/decimal"
)

const publicMembersKey = "members:public"

// ============================================
// Member Service
// ============================================

type MemberService interface {
	// List returns the public members other than callerID, ordered by name.
	List(ctx context.Context, callerID string) ([]*repository.User, error)
	Get(ctx context.Context, callerID, id string) (*repository.User, error)
	Rate(ctx context.Context, raterID, rateeID string, score int) (*repository.User, error)
	// Invalidate drops the cached directory after a member changed.
	Invalidate(ctx context.Context)
}

type memberService struct {
	userRepo    repository.UserRepository
	ratingRepo  repository.RatingRepository
	requestRepo repository.SwapRequestRepository
	cache       MemberCache
	ttl         time.Duration
	logger      *slog.Logger
}

func NewMemberService(
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	requestRepo repository.SwapRequestRepository,
	cache MemberCache,
	ttl time.Duration,
) MemberService {
	return &memberService{
		userRepo:    userRepo,
		ratingRepo:  ratingRepo,
		requestRepo: requestRepo,
		cache:       cache,
		ttl:         ttl,
		logger:      slog.Default().With(slog.String("component", "members")),
	}
}

func (s *memberService) List(ctx context.Context, callerID string) ([]*repository.User, error) {
	all, err := s.publicMembers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*repository.User, 0, len(all))
	for _, u := range all {
		if u.ID != callerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *memberService) publicMembers(ctx context.Context) ([]*repository.User, error) {
	if s.cache != nil {
		var cached []*repository.User
		err := s.cache.GetCache(ctx, publicMembersKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, db.ErrCacheMiss) {
			s.logger.Warn("member_cache_read_failed", slog.Any("error", err))
		}
	}

	users, err := s.userRepo.FindPublic(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list public members: %w", err)
	}
	for _, u := range users {
		u.Password = ""
		u.Email = ""
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetCache(ctx, publicMembersKey, users, s.ttl); err != nil {
			s.logger.Warn("member_cache_write_failed", slog.Any("error", err))
		}
	}
	return users, nil
}

func (s *memberService) Get(ctx context.Context, callerID, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find member: %w", err)
	}
	if user == nil || (!user.IsPublic && user.ID != callerID) {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *memberService) Rate(ctx context.Context, raterID, rateeID string, score int) (*repository.User, error) {
	if score < types.MinRating || score > types.MaxRating {
		return nil, fmt.Errorf("%w: score must be between %d and %d", ErrInvalidInput, types.MinRating, types.MaxRating)
	}
	if raterID == rateeID {
		return nil, ErrSelfRating
	}

	ratee, err := s.Get(ctx, raterID, rateeID)
	if err != nil {
		return nil, err
	}

	swapped, err := s.requestRepo.HasAcceptedBetween(ctx, raterID, rateeID)
	if err != nil {
		return nil, fmt.Errorf("check swap history: %w", err)
	}
	if !swapped {
		return nil, ErrRatingNotAllowed
	}

	if err := s.ratingRepo.Upsert(ctx, &repository.Rating{RaterID: raterID, RateeID: rateeID, Score: score}); err != nil {
		return nil, fmt.Errorf("save rating: %w", err)
	}
	scores, err := s.ratingRepo.ScoresFor(ctx, rateeID)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}

	ratee.Rating = AverageRating(scores)
	if err := s.userRepo.UpdateRating(ctx, rateeID, ratee.Rating); err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	s.Invalidate(ctx)
	return ratee, nil
}

func (s *memberService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(ctx, "members:*"); err != nil {
		s.logger.Warn("member_cache_invalidate_failed", slog.Any("error", err))
	}
}

// AverageRating is the mean score rounded to one decimal place.
func AverageRating(scores []int) decimal.Decimal {
	if len(scores) == 0 {
		return decimal.Zero
	}
	sum := int64(0)
	for _, s := range scores {
		sum += int64(s)
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(scores)))).Round(1)
}
