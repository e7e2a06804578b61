package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/config"
	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ============================================
// Auth Service
// ============================================

// Tokens is an access/refresh pair.
type Tokens struct {
	Access  string
	Refresh string
}

type AuthService interface {
	Register(ctx context.Context, email, username, name, password string) (*repository.User, Tokens, error)
	Login(ctx context.Context, email, password string) (*repository.User, Tokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	// Authenticate validates an access token and returns its subject.
	Authenticate(token string) (string, error)
}

type authService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) AuthService {
	return &authService{cfg: cfg, userRepo: userRepo, now: time.Now}
}

func (s *authService) Register(ctx context.Context, email, username, name, password string) (*repository.User, Tokens, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, Tokens{}, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, Tokens{}, ErrUserExists
	}
	existing, err = s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, Tokens{}, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, Tokens{}, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, Tokens{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = username
	}
	user := &repository.User{
		Email:         strings.TrimSpace(email),
		Username:      username,
		Name:          strings.TrimSpace(name),
		Password:      string(hashedPassword),
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
		IsPublic:      true,
		Status:        types.UserOnline,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, Tokens{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.generateTokens(ctx, user.ID)
	if err != nil {
		return nil, Tokens{}, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return user, tokens, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*repository.User, Tokens, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, Tokens{}, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return nil, Tokens{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, Tokens{}, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastActive(ctx, user.ID); err != nil {
		return nil, Tokens{}, fmt.Errorf("update last active: %w", err)
	}
	user.Status = types.UserOnline

	tokens, err := s.generateTokens(ctx, user.ID)
	if err != nil {
		return nil, Tokens{}, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return user, tokens, nil
}

// RefreshToken rotates a refresh token: the presented one is revoked and a
// new pair is issued.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (Tokens, error) {
	rt, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return Tokens{}, fmt.Errorf("lookup refresh token: %w", err)
	}
	if rt == nil {
		return Tokens{}, ErrInvalidToken
	}
	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return Tokens{}, fmt.Errorf("revoke refresh token: %w", err)
	}
	if s.now().After(rt.ExpiresAt) {
		return Tokens{}, ErrInvalidToken
	}

	if err := s.userRepo.UpdateLastActive(ctx, rt.UserID); err != nil {
		return Tokens{}, fmt.Errorf("update last active: %w", err)
	}
	tokens, err := s.generateTokens(ctx, rt.UserID)
	if err != nil {
		return Tokens{}, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return tokens, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *authService) Authenticate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *authService) generateTokens(ctx context.Context, userID string) (Tokens, error) {
	now := s.now()
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour * time.Duration(s.cfg.JWTExpiry))),
	})
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return Tokens{}, err
	}

	rt := &repository.RefreshToken{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(time.Hour * 24 * time.Duration(s.cfg.RefreshExpiry)),
	}
	if err := s.userRepo.SaveRefreshToken(ctx, rt); err != nil {
		return Tokens{}, err
	}
	return Tokens{Access: accessTokenString, Refresh: rt.Token}, nil
}
