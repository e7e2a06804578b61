package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type User struct {
	ID            string
	Email         string
	Username      string
	Password      string
	Name          string
	Avatar        *string
	Location      string
	Bio           string
	SkillsOffered []string
	SkillsWanted  []string
	Rating        decimal.Decimal
	Availability  *string
	IsPublic      bool
	TotalSwaps    int
	Status        string
	LastActiveAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindPublic(ctx context.Context, excludeID string) ([]*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*User, error)
	Update(ctx context.Context, user *User) error
	UpdateRating(ctx context.Context, userID string, rating decimal.Decimal) error
	IncrementSwaps(ctx context.Context, userIDs ...string) error
	UpdateLastActive(ctx context.Context, userID string) error
	UpdateStatusForInactive(ctx context.Context, inactiveDuration time.Duration) (int, error)
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID string) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int, error)
}

type pgUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

const userColumns = `
	id, email, username, password, name, avatar, location, bio,
	skills_offered, skills_wanted, rating, availability, is_public, total_swaps,
	status, last_active_at, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.Password, &user.Name, &user.Avatar,
		&user.Location, &user.Bio, &user.SkillsOffered, &user.SkillsWanted, &user.Rating,
		&user.Availability, &user.IsPublic, &user.TotalSwaps,
		&user.Status, &user.LastActiveAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) findOne(ctx context.Context, query string, args ...any) (*User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *pgUserRepository) findMany(ctx context.Context, query string, args ...any) ([]*User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, username, password, name, avatar, location, bio,
			skills_offered, skills_wanted, availability, is_public, status, last_active_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, rating, total_swaps, created_at, updated_at
	`
	now := time.Now()
	user.LastActiveAt = &now
	if user.Status == "" {
		user.Status = "online"
	}
	return r.pool.QueryRow(ctx, query,
		user.Email, user.Username, user.Password, user.Name, user.Avatar, user.Location, user.Bio,
		nonNilSkills(user.SkillsOffered), nonNilSkills(user.SkillsWanted),
		user.Availability, user.IsPublic, user.Status, now,
	).Scan(&user.ID, &user.Rating, &user.TotalSwaps, &user.CreatedAt, &user.UpdatedAt)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(username) = LOWER($1)`, username)
}

// FindPublic lists public members ordered by name, leaving out excludeID.
func (r *pgUserRepository) FindPublic(ctx context.Context, excludeID string) ([]*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE is_public AND ($1 = '' OR id::text <> $1)
		ORDER BY name, id`
	return r.findMany(ctx, query, excludeID)
}

func (r *pgUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findMany(ctx, `SELECT `+userColumns+` FROM users WHERE id::text = ANY($1)`, ids)
}

func (r *pgUserRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users SET
			name = $2, avatar = $3, location = $4, bio = $5,
			skills_offered = $6, skills_wanted = $7, availability = $8, is_public = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		user.ID, user.Name, user.Avatar, user.Location, user.Bio,
		nonNilSkills(user.SkillsOffered), nonNilSkills(user.SkillsWanted),
		user.Availability, user.IsPublic,
	).Scan(&user.UpdatedAt)
}

func (r *pgUserRepository) UpdateRating(ctx context.Context, userID string, rating decimal.Decimal) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET rating = $2, updated_at = NOW() WHERE id = $1`, userID, rating)
	return err
}

func (r *pgUserRepository) IncrementSwaps(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `UPDATE users SET total_swaps = total_swaps + 1, updated_at = NOW() WHERE id::text = ANY($1)`
	_, err := r.pool.Exec(ctx, query, userIDs)
	return err
}

func (r *pgUserRepository) UpdateLastActive(ctx context.Context, userID string) error {
	query := `UPDATE users SET last_active_at = NOW(), status = 'online' WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

func (r *pgUserRepository) UpdateStatusForInactive(ctx context.Context, inactiveDuration time.Duration) (int, error) {
	query := `
		UPDATE users SET status = 'offline'
		WHERE status <> 'offline' AND last_active_at < $1
	`
	threshold := time.Now().Add(-inactiveDuration)
	tag, err := r.pool.Exec(ctx, query, threshold)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgUserRepository) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query, token.Token, token.UserID, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
}

func (r *pgUserRepository) FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM refresh_tokens WHERE token = $1
	`
	rt := &RefreshToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *pgUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	return err
}

func (r *pgUserRepository) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

func (r *pgUserRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func nonNilSkills(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
