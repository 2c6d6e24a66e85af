package postgres

import (
	"context"
	"errors"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const pgUniqueViolation = "23505"

// rowQuerier is the slice of the pool the user repository needs
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	db rowQuerier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*domain.User, error) {
	const query = `SELECT id, firebase_uid, email, name, picture FROM users WHERE firebase_uid = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, firebaseUID).Scan(
		&user.ID, &user.FirebaseUID, &user.Email, &user.Name, &user.Picture,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateOrGet returns the existing user for the Firebase UID or inserts a
// new row. Two first-time authentications for the same subject may race
// here; the unique constraint on firebase_uid decides the winner and the
// loser re-reads the committed row instead of reporting the violation.
func (r *UserRepository) CreateOrGet(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := r.GetByFirebaseUID(ctx, user.FirebaseUID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	const insert = `INSERT INTO users (firebase_uid, email, name, picture)
	                VALUES ($1, $2, $3, $4)
	                RETURNING id, firebase_uid, email, name, picture`

	var created domain.User
	err = r.db.QueryRow(ctx, insert, user.FirebaseUID, user.Email, user.Name, user.Picture).Scan(
		&created.ID, &created.FirebaseUID, &created.Email, &created.Name, &created.Picture,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return r.GetByFirebaseUID(ctx, user.FirebaseUID)
		}
		return nil, err
	}
	return &created, nil
}
