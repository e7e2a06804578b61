package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Marga-Ghale/skill-swap/internal/repository"
	"github.com/Marga-Ghale/skill-swap/internal/types"
)

type swapRequestRepo struct{ s *Store }

// view joins the party names; callers hold at least the read lock.
func (r *swapRequestRepo) view(row *swapRow) *repository.SwapRequest {
	req := row.SwapRequest
	if from, ok := r.s.users[req.FromUserID]; ok {
		req.FromName, req.FromAvatar = from.Name, from.Avatar
	}
	if to, ok := r.s.users[req.ToUserID]; ok {
		req.ToName, req.ToAvatar = to.Name, to.Avatar
	}
	return &req
}

func (r *swapRequestRepo) list(match func(*swapRow) bool) []*repository.SwapRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*swapRow
	for _, row := range r.s.requests {
		if match(row) {
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b *swapRow) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.seq, a.seq))
	})

	out := make([]*repository.SwapRequest, len(rows))
	for i, row := range rows {
		out[i] = r.view(row)
	}
	return out
}

func (r *swapRequestRepo) Create(_ context.Context, req *repository.SwapRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.requests {
		if row.Status == types.RequestPending && row.FromUserID == req.FromUserID && row.ToUserID == req.ToUserID &&
			row.OfferedSkill == req.OfferedSkill && row.RequestedSkill == req.RequestedSkill {
			return repository.ErrDuplicatePending
		}
	}

	req.ID = newID()
	req.Status = types.RequestPending
	req.CreatedAt = r.s.now()
	r.s.requests[req.ID] = &swapRow{SwapRequest: *req, seq: r.s.nextSeq()}
	return nil
}

// Insert stores a request verbatim, keeping its status and timestamps.
func (s *Store) Insert(req repository.SwapRequest) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID == "" {
		req.ID = newID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = s.now()
	}
	s.requests[req.ID] = &swapRow{SwapRequest: req, seq: s.nextSeq()}
	return req.ID
}

func (r *swapRequestRepo) FindByID(_ context.Context, id string) (*repository.SwapRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if row, ok := r.s.requests[id]; ok {
		return r.view(row), nil
	}
	return nil, nil
}

func (r *swapRequestRepo) FindIncoming(_ context.Context, userID, status string) ([]*repository.SwapRequest, error) {
	return r.list(func(row *swapRow) bool {
		return row.ToUserID == userID && (status == "" || row.Status == status)
	}), nil
}

func (r *swapRequestRepo) FindSent(_ context.Context, userID string) ([]*repository.SwapRequest, error) {
	return r.list(func(row *swapRow) bool { return row.FromUserID == userID }), nil
}

func (r *swapRequestRepo) FindPending(_ context.Context, fromID, toID, offered, requested string) (*repository.SwapRequest, error) {
	found := r.list(func(row *swapRow) bool {
		return row.Status == types.RequestPending && row.FromUserID == fromID && row.ToUserID == toID &&
			strings.EqualFold(row.OfferedSkill, offered) && strings.EqualFold(row.RequestedSkill, requested)
	})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *swapRequestRepo) Decide(_ context.Context, id, status string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.requests[id]
	if !ok || row.Status != types.RequestPending {
		return false, nil
	}
	now := r.s.now()
	row.Status = status
	row.DecidedAt = &now
	return true, nil
}

func (r *swapRequestRepo) HasAcceptedBetween(_ context.Context, userA, userB string) (bool, error) {
	found := r.list(func(row *swapRow) bool {
		return row.Status == types.RequestAccepted &&
			((row.FromUserID == userA && row.ToUserID == userB) || (row.FromUserID == userB && row.ToUserID == userA))
	})
	return len(found) > 0, nil
}

func (r *swapRequestRepo) PendingOlderThan(_ context.Context, before time.Time) ([]repository.PendingSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byUser := map[string]*repository.PendingSummary{}
	for _, row := range r.s.requests {
		if row.Status != types.RequestPending || !row.CreatedAt.Before(before) {
			continue
		}
		sum, ok := byUser[row.ToUserID]
		if !ok {
			sum = &repository.PendingSummary{UserID: row.ToUserID, Oldest: row.CreatedAt}
			byUser[row.ToUserID] = sum
		}
		sum.Count++
		if row.CreatedAt.Before(sum.Oldest) {
			sum.Oldest = row.CreatedAt
		}
	}

	out := make([]repository.PendingSummary, 0, len(byUser))
	for _, sum := range byUser {
		out = append(out, *sum)
	}
	slices.SortFunc(out, func(a, b repository.PendingSummary) int { return cmp.Compare(a.UserID, b.UserID) })
	return out, nil
}
