package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Rating struct {
	ID        string
	RaterID   string
	RateeID   string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RatingRepository interface {
	// Upsert stores the rater's score for the ratee, replacing an earlier one.
	Upsert(ctx context.Context, rating *Rating) error
	ScoresFor(ctx context.Context, rateeID string) ([]int, error)
}

type pgRatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &pgRatingRepository{pool: pool}
}

func (r *pgRatingRepository) Upsert(ctx context.Context, rating *Rating) error {
	query := `
		INSERT INTO ratings (rater_id, ratee_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (rater_id, ratee_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, rating.RaterID, rating.RateeID, rating.Score).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
}

func (r *pgRatingRepository) ScoresFor(ctx context.Context, rateeID string) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT score FROM ratings WHERE ratee_id = $1`, rateeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
