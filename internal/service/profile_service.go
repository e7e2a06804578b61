package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

// ProfileChanges is a partial profile edit; nil fields are left untouched.
type ProfileChanges struct {
	Name          *string
	Avatar        *string
	Location      *string
	Bio           *string
	Availability  *string
	IsPublic      *bool
	SkillsOffered *[]string
	SkillsWanted  *[]string
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*repository.User, error)
	Update(ctx context.Context, userID string, changes ProfileChanges) (*repository.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
	members  MemberService
}

func NewProfileService(userRepo repository.UserRepository, members MemberService) ProfileService {
	return &profileService{userRepo: userRepo, members: members}
}

func (s *profileService) Get(ctx context.Context, userID string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *profileService) Update(ctx context.Context, userID string, changes ProfileChanges) (*repository.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		user.Name = name
	}
	if changes.Avatar != nil {
		user.Avatar = optionalText(*changes.Avatar)
	}
	if changes.Location != nil {
		user.Location = strings.TrimSpace(*changes.Location)
	}
	if changes.Bio != nil {
		user.Bio = strings.TrimSpace(*changes.Bio)
	}
	if changes.Availability != nil {
		user.Availability = optionalText(*changes.Availability)
	}
	if changes.IsPublic != nil {
		user.IsPublic = *changes.IsPublic
	}
	if changes.SkillsOffered != nil {
		if user.SkillsOffered, err = NormalizeSkills(*changes.SkillsOffered); err != nil {
			return nil, err
		}
	}
	if changes.SkillsWanted != nil {
		if user.SkillsWanted, err = NormalizeSkills(*changes.SkillsWanted); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.members.Invalidate(ctx)
	return user, nil
}

// NormalizeSkills trims entries, drops empty ones and case-insensitive
// duplicates, keeping the first spelling.
func NormalizeSkills(skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if utf8.RuneCountInString(skill) > types.MaxSkillLength {
			return nil, fmt.Errorf("%w: skill %q is longer than %d characters", ErrInvalidInput, skill, types.MaxSkillLength)
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	if len(out) > types.MaxSkillsPerList {
		return nil, fmt.Errorf("%w: at most %d skills allowed", ErrInvalidInput, types.MaxSkillsPerList)
	}
	return out, nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
