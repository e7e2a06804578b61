package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/shopspring/decimal"
)

type userRepo struct{ s *Store }

func cloneUser(u *repository.User) *repository.User {
	c := *u
	c.SkillsOffered = slices.Clone(u.SkillsOffered)
	c.SkillsWanted = slices.Clone(u.SkillsWanted)
	if c.SkillsOffered == nil {
		c.SkillsOffered = []string{}
	}
	if c.SkillsWanted == nil {
		c.SkillsWanted = []string{}
	}
	return &c
}

func (r *userRepo) Create(_ context.Context, user *repository.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	user.ID = newID()
	user.LastActiveAt = &now
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Rating = decimal.Zero
	if user.Status == "" {
		user.Status = "online"
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) find(match func(*repository.User) bool) *repository.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u)
		}
	}
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	return r.find(func(u *repository.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*repository.User, error) {
	return r.find(func(u *repository.User) bool { return strings.EqualFold(u.Username, username) }), nil
}

func (r *userRepo) FindPublic(_ context.Context, excludeID string) ([]*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*repository.User
	for _, u := range r.s.users {
		if u.IsPublic && u.ID != excludeID {
			out = append(out, cloneUser(u))
		}
	}
	slices.SortFunc(out, func(a, b *repository.User) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *userRepo) FindByIDs(_ context.Context, ids []string) ([]*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*repository.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *userRepo) Update(_ context.Context, user *repository.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return nil
	}
	stored.Name = user.Name
	stored.Avatar = user.Avatar
	stored.Location = user.Location
	stored.Bio = user.Bio
	stored.SkillsOffered = slices.Clone(user.SkillsOffered)
	stored.SkillsWanted = slices.Clone(user.SkillsWanted)
	stored.Availability = user.Availability
	stored.IsPublic = user.IsPublic
	stored.UpdatedAt = r.s.now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *userRepo) UpdateRating(_ context.Context, userID string, rating decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; ok {
		u.Rating = rating
		u.UpdatedAt = r.s.now()
	}
	return nil
}

func (r *userRepo) IncrementSwaps(_ context.Context, userIDs ...string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range userIDs {
		if u, ok := r.s.users[id]; ok {
			u.TotalSwaps++
		}
	}
	return nil
}

func (r *userRepo) UpdateLastActive(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; ok {
		now := r.s.now()
		u.LastActiveAt = &now
		u.Status = "online"
	}
	return nil
}

func (r *userRepo) UpdateStatusForInactive(_ context.Context, inactiveDuration time.Duration) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	threshold := r.s.now().Add(-inactiveDuration)
	n := 0
	for _, u := range r.s.users {
		if u.Status != "offline" && u.LastActiveAt != nil && u.LastActiveAt.Before(threshold) {
			u.Status = "offline"
			n++
		}
	}
	return n, nil
}

func (r *userRepo) SaveRefreshToken(_ context.Context, token *repository.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	token.ID = newID()
	token.CreatedAt = r.s.now()
	c := *token
	r.s.refreshTokens[token.Token] = &c
	return nil
}

func (r *userRepo) FindRefreshToken(_ context.Context, token string) (*repository.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if rt, ok := r.s.refreshTokens[token]; ok {
		c := *rt
		return &c, nil
	}
	return nil, nil
}

func (r *userRepo) DeleteRefreshToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.refreshTokens, token)
	return nil
}

func (r *userRepo) DeleteUserRefreshTokens(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for token, rt := range r.s.refreshTokens {
		if rt.UserID == userID {
			delete(r.s.refreshTokens, token)
		}
	}
	return nil
}

func (r *userRepo) DeleteExpiredRefreshTokens(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	n := 0
	for token, rt := range r.s.refreshTokens {
		if rt.ExpiresAt.Before(now) {
			delete(r.s.refreshTokens, token)
			n++
		}
	}
	return n, nil
}
