package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role 用户角色（决定提交形态与读取权限）
type Role string

const (
	RoleUser       Role = "user"
	RoleHospital   Role = "hospital"
	RoleGovernment Role = "government"
)

// ParseRole validates and normalizes a caller-supplied role string.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleHospital:
		return RoleHospital, nil
	case RoleGovernment:
		return RoleGovernment, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be government, hospital, or user", s)
	}
}

// User 用户领域模型（对应 users 表）
type User struct {
	UserID       string    `db:"user_id"` // UUID, PRIMARY KEY
	Name         string    `db:"name"`
	Email        string    `db:"email"` // UNIQUE, NOT NULL
	PasswordHash []byte    `db:"password_hash"` // bcrypt, never serialized
	Role         Role      `db:"role"`
	Organization string    `db:"organization"` // required when role != user
	Location     string    `db:"location"`     // optional free text
	CreatedAt    time.Time `db:"created_at"`
}

// PublicUser 对外返回的用户信息（不包含 password_hash）
type PublicUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Organization string    `json:"organization"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public strips the credential material from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Organization: u.Organization,
		Location:     u.Location,
		CreatedAt:    u.CreatedAt,
	}
}
