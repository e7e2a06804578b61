package memory

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
)

type ratingRepo struct{ s *Store }

func (r *ratingRepo) Upsert(_ context.Context, rating *repository.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := rating.RaterID + "|" + rating.RateeID
	now := r.s.now()
	if existing, ok := r.s.ratings[key]; ok {
		existing.Score = rating.Score
		existing.UpdatedAt = now
		*rating = *existing
		return nil
	}
	rating.ID = newID()
	rating.CreatedAt = now
	rating.UpdatedAt = now
	c := *rating
	r.s.ratings[key] = &c
	return nil
}

func (r *ratingRepo) ScoresFor(_ context.Context, rateeID string) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var scores []int
	for _, rating := range r.s.ratings {
		if rating.RateeID == rateeID {
			scores = append(scores, rating.Score)
		}
	}
	return scores, nil
}

type notificationRepo struct{ s *Store }

func cloneNotification(n *repository.Notification) *repository.Notification {
	c := *n
	c.Data = maps.Clone(n.Data)
	return &c
}

func (r *notificationRepo) Create(_ context.Context, n *repository.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = newID()
	n.CreatedAt = r.s.now()
	r.s.notifications = append(r.s.notifications, cloneNotification(n))
	return nil
}

func (r *notificationRepo) FindByUserID(_ context.Context, userID string, unreadOnly bool) ([]*repository.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*repository.Notification
	for _, n := range slices.Backward(r.s.notifications) {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, cloneNotification(n))
		}
		if len(out) == 100 {
			break
		}
	}
	return out, nil
}

func (r *notificationRepo) CountByUserID(_ context.Context, userID string) (int, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total, unread := 0, 0
	for _, n := range r.s.notifications {
		if n.UserID != userID {
			continue
		}
		total++
		if !n.Read {
			unread++
		}
	}
	return total, unread, nil
}

func (r *notificationRepo) MarkAsRead(_ context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *notificationRepo) DeleteOlderThan(_ context.Context, olderThan time.Time, readOnly bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.notifications[:0]
	removed := 0
	for _, n := range r.s.notifications {
		if n.CreatedAt.Before(olderThan) && (!readOnly || n.Read) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	r.s.notifications = kept
	return removed, nil
}
