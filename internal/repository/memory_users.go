package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// MemoryUsersRepo 内存用户仓库（无 DB 模式 / 单元测试用）
type MemoryUsersRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // lower(email) -> userID
}

func NewMemoryUsersRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]string{},
	}
}

var _ UsersRepo = (*MemoryUsersRepo)(nil)

func (r *MemoryUsersRepo) CreateUser(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrDuplicateEmail
	}
	r.byID[u.UserID] = *u
	r.byEmail[key] = u.UserID
	return nil
}

func (r *MemoryUsersRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryUsersRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// DeleteUser removes a user record. Test helper for the
// "token subject no longer exists" path; no HTTP surface exposes it.
func (r *MemoryUsersRepo) DeleteUser(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, strings.ToLower(u.Email))
		delete(r.byID, id)
	}
}
