package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// PostgresUsersRepo 用户仓库 PostgreSQL 实现
type PostgresUsersRepo struct {
	db *sql.DB
}

func NewPostgresUsersRepo(db *sql.DB) *PostgresUsersRepo {
	return &PostgresUsersRepo{db: db}
}

var _ UsersRepo = (*PostgresUsersRepo)(nil)

const uniqueViolation = "23505"

func (r *PostgresUsersRepo) CreateUser(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (user_id, name, email, password_hash, role, organization, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.UserID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.Organization, u.Location, u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresUsersRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id::text, name, email, password_hash, role, organization, location, created_at
		  FROM users
		 WHERE lower(email) = lower($1)
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUsersRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT user_id::text, name, email, password_hash, role, organization, location, created_at
		  FROM users
		 WHERE user_id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUsersRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Organization, &u.Location, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
