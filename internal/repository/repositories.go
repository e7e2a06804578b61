package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// pgxpool
	UserRepo         UserRepository
	RatingRepo       RatingRepository
	NotificationRepo NotificationRepository

	// database/sql through sqlx
	SwapRequestRepo SwapRequestRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		UserRepo:         NewUserRepository(pool),
		RatingRepo:       NewRatingRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),

		SwapRequestRepo: NewSwapRequestRepository(db),
	}
}
