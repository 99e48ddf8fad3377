package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
)

func newTestAuthService() (AuthService, *repository.MemoryUsersRepo) {
	users := repository.NewMemoryUsersRepo()
	tokens := NewTokenService("test-secret", 7*24*time.Hour)
	return NewAuthService(users, tokens, zap.NewNop()), users
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := auth.Signup(ctx, SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "user",
		Location: "Pune",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Alice", resp.User.Name)
	require.Equal(t, domain.RoleUser, resp.User.Role)

	login, err := auth.Login(ctx, LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthService_SignupMissingFields(t *testing.T) {
	auth, _ := newTestAuthService()

	_, err := auth.Signup(context.Background(), SignupRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  "user",
	})
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAuthService_SignupInvalidRole(t *testing.T) {
	auth, _ := newTestAuthService()

	_, err := auth.Signup(context.Background(), SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "admin",
	})
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAuthService_SignupOrganizationRequired(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	// hospital/government 必须带 organization
	for _, role := range []string{"hospital", "government"} {
		_, err := auth.Signup(ctx, SignupRequest{
			Name:     "City Hospital",
			Email:    role + "@example.com",
			Password: "password123",
			Role:     role,
		})
		require.Error(t, err, role)
		require.Equal(t, domain.KindValidation, domain.KindOf(err))
	}

	// user 不需要
	_, err := auth.Signup(ctx, SignupRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "password123",
		Role:     "user",
	})
	require.NoError(t, err)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	req := SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "user",
	}
	_, err := auth.Signup(ctx, req)
	require.NoError(t, err)

	_, err = auth.Signup(ctx, req)
	require.Error(t, err)
	require.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// 未知邮箱和密码错误必须返回完全相同的错误，不可区分
func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	auth, _ := newTestAuthService()
	ctx := context.Background()

	_, err := auth.Signup(ctx, SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "user",
	})
	require.NoError(t, err)

	_, errUnknown := auth.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	_, errWrongPass := auth.Login(ctx, LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	require.Equal(t, domain.KindUnauthenticated, domain.KindOf(errUnknown))
	require.Equal(t, domain.KindUnauthenticated, domain.KindOf(errWrongPass))
	require.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_Profile(t *testing.T) {
	auth, users := newTestAuthService()
	ctx := context.Background()

	resp, err := auth.Signup(ctx, SignupRequest{
		Name:         "Health Dept",
		Email:        "gov@example.com",
		Password:     "password123",
		Role:         "government",
		Organization: "Ministry of Health",
	})
	require.NoError(t, err)

	pub, err := auth.Profile(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Health Dept", pub.Name)
	require.Equal(t, "Ministry of Health", pub.Organization)

	// 用户被删除后 Profile 返回 not_found
	users.DeleteUser(resp.User.ID)
	_, err = auth.Profile(ctx, resp.User.ID)
	require.Error(t, err)
	require.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
