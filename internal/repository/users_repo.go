package repository

import (
	"context"
	"errors"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// 仓库层哨兵错误；service 层负责翻译成领域错误
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UsersRepo 用户仓库接口（Credential Store）
type UsersRepo interface {
	// CreateUser persists a new user. Returns ErrDuplicateEmail when the
	// email is already taken.
	CreateUser(ctx context.Context, u *domain.User) error

	// GetUserByEmail returns ErrNotFound when no user carries the email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUserByID returns ErrNotFound when the id does not resolve
	// (e.g. the user was deleted after a token was issued).
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
