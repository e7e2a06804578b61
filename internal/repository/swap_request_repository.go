package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicatePending is returned when an identical pending request already exists.
var ErrDuplicatePending = errors.New("duplicate pending swap request")

type SwapRequest struct {
	ID             string     `db:"id"`
	FromUserID     string     `db:"from_user_id"`
	FromName       string     `db:"from_name"`
	FromAvatar     *string    `db:"from_avatar"`
	ToUserID       string     `db:"to_user_id"`
	ToName         string     `db:"to_name"`
	ToAvatar       *string    `db:"to_avatar"`
	OfferedSkill   string     `db:"offered_skill"`
	RequestedSkill string     `db:"requested_skill"`
	Message        *string    `db:"message"`
	Status         string     `db:"status"`
	DecidedAt      *time.Time `db:"decided_at"`
	CreatedAt      time.Time  `db:"created_at"`
}

// PendingSummary counts stale pending requests addressed to one member.
type PendingSummary struct {
	UserID string    `db:"to_user_id"`
	Count  int       `db:"pending"`
	Oldest time.Time `db:"oldest"`
}

type SwapRequestRepository interface {
	Create(ctx context.Context, req *SwapRequest) error
	FindByID(ctx context.Context, id string) (*SwapRequest, error)
	FindIncoming(ctx context.Context, userID, status string) ([]*SwapRequest, error)
	FindSent(ctx context.Context, userID string) ([]*SwapRequest, error)
	FindPending(ctx context.Context, fromID, toID, offered, requested string) (*SwapRequest, error)
	// Decide moves a pending request to status. It reports false when the
	// request was no longer pending.
	Decide(ctx context.Context, id, status string) (bool, error)
	HasAcceptedBetween(ctx context.Context, userA, userB string) (bool, error)
	PendingOlderThan(ctx context.Context, before time.Time) ([]PendingSummary, error)
}

type sqlSwapRequestRepository struct {
	db *sqlx.DB
}

func NewSwapRequestRepository(db *sqlx.DB) SwapRequestRepository {
	return &sqlSwapRequestRepository{db: db}
}

const swapRequestSelect = `
	SELECT r.id, r.from_user_id, f.name AS from_name, f.avatar AS from_avatar,
		r.to_user_id, t.name AS to_name, t.avatar AS to_avatar,
		r.offered_skill, r.requested_skill, r.message, r.status, r.decided_at, r.created_at
	FROM swap_requests r
	JOIN users f ON f.id = r.from_user_id
	JOIN users t ON t.id = r.to_user_id`

func (r *sqlSwapRequestRepository) Create(ctx context.Context, req *SwapRequest) error {
	query := `
		INSERT INTO swap_requests (from_user_id, to_user_id, offered_skill, requested_skill, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		req.FromUserID, req.ToUserID, req.OfferedSkill, req.RequestedSkill, req.Message,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicatePending
	}
	return err
}

func (r *sqlSwapRequestRepository) FindByID(ctx context.Context, id string) (*SwapRequest, error) {
	req := &SwapRequest{}
	err := r.db.GetContext(ctx, req, swapRequestSelect+` WHERE r.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// FindIncoming lists requests addressed to userID, newest first. An empty
// status returns every status.
func (r *sqlSwapRequestRepository) FindIncoming(ctx context.Context, userID, status string) ([]*SwapRequest, error) {
	query := swapRequestSelect + `
		WHERE r.to_user_id = $1 AND ($2 = '' OR r.status = $2)
		ORDER BY r.created_at DESC, r.id`
	var reqs []*SwapRequest
	if err := r.db.SelectContext(ctx, &reqs, query, userID, status); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *sqlSwapRequestRepository) FindSent(ctx context.Context, userID string) ([]*SwapRequest, error) {
	query := swapRequestSelect + `
		WHERE r.from_user_id = $1
		ORDER BY r.created_at DESC, r.id`
	var reqs []*SwapRequest
	if err := r.db.SelectContext(ctx, &reqs, query, userID); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *sqlSwapRequestRepository) FindPending(ctx context.Context, fromID, toID, offered, requested string) (*SwapRequest, error) {
	query := swapRequestSelect + `
		WHERE r.from_user_id = $1 AND r.to_user_id = $2
			AND LOWER(r.offered_skill) = LOWER($3) AND LOWER(r.requested_skill) = LOWER($4)
			AND r.status = 'pending'
		LIMIT 1`
	req := &SwapRequest{}
	err := r.db.GetContext(ctx, req, query, fromID, toID, offered, requested)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *sqlSwapRequestRepository) Decide(ctx context.Context, id, status string) (bool, error) {
	query := `
		UPDATE swap_requests SET status = $2, decided_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *sqlSwapRequestRepository) HasAcceptedBetween(ctx context.Context, userA, userB string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swap_requests
			WHERE status = 'accepted'
				AND ((from_user_id = $1 AND to_user_id = $2) OR (from_user_id = $2 AND to_user_id = $1))
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userA, userB)
	return exists, err
}

func (r *sqlSwapRequestRepository) PendingOlderThan(ctx context.Context, before time.Time) ([]PendingSummary, error) {
	query := `
		SELECT to_user_id, COUNT(*) AS pending, MIN(created_at) AS oldest
		FROM swap_requests
		WHERE status = 'pending' AND created_at < $1
		GROUP BY to_user_id
	`
	var out []PendingSummary
	if err := r.db.SelectContext(ctx, &out, query, before); err != nil {
		return nil, err
	}
	return out, nil
}
