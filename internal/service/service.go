package service

import (
	"context"
	"errors"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/config"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")

	ErrRequestNotFound   = errors.New("swap request not found")
	ErrNotRecipient      = errors.New("only the recipient can decide a swap request")
	ErrRequestDecided    = errors.New("swap request already decided")
	ErrSelfRequest       = errors.New("cannot send a swap request to yourself")
	ErrDuplicateRequest  = errors.New("a matching request is already pending")
	ErrSkillNotOffered   = errors.New("offered skill is not in your profile")
	ErrSkillNotAvailable = errors.New("requested skill is not offered by this member")

	ErrSelfRating       = errors.New("cannot rate yourself")
	ErrRatingNotAllowed = errors.New("rating requires an accepted swap")
)

// MemberCache stores the public member directory. *db.RedisDB satisfies it.
type MemberCache interface {
	GetCache(ctx context.Context, key string, dest any) error
	SetCache(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidateCache(ctx context.Context, pattern string) error
}

// SwapEvents is told about request lifecycle changes. *notification.Service satisfies it.
type SwapEvents interface {
	RequestReceived(ctx context.Context, req *repository.SwapRequest) error
	RequestDecided(ctx context.Context, req *repository.SwapRequest) error
}

// SwapRecorder counts request lifecycle events. *metrics.Metrics satisfies it.
type SwapRecorder interface {
	RecordCreated()
	RecordDecision(status string)
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth         AuthService
	Member       MemberService
	Profile      ProfileService
	Request      RequestService
	Notification NotificationService
}

// ServiceDeps contains all dependencies needed to create services. Cache,
// Events and Recorder are optional.
type ServiceDeps struct {
	Config   *config.Config
	Repos    *repository.Repositories
	Cache    MemberCache
	Events   SwapEvents
	Recorder SwapRecorder
}

func NewServices(deps *ServiceDeps) *Services {
	members := NewMemberService(
		deps.Repos.UserRepo,
		deps.Repos.RatingRepo,
		deps.Repos.SwapRequestRepo,
		deps.Cache,
		deps.Config.MemberCacheTTL,
	)

	return &Services{
		Auth:    NewAuthService(deps.Config, deps.Repos.UserRepo),
		Member:  members,
		Profile: NewProfileService(deps.Repos.UserRepo, members),
		Request: NewRequestService(
			deps.Repos.SwapRequestRepo,
			deps.Repos.UserRepo,
			members,
			deps.Events,
			deps.Recorder,
		),
		Notification: NewNotificationService(deps.Repos.NotificationRepo),
	}
}
