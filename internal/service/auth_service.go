package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
	"github.com/google/uuid"
)

// AuthService 注册/登录/查询当前用户
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Profile(ctx context.Context, userID string) (*domain.PublicUser, error)
}

type authService struct {
	users  repository.UsersRepo
	tokens *TokenService
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UsersRepo, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SignupRequest 注册请求
type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse 注册/登录响应：token + 脱敏用户信息
type AuthResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, domain.Invalid("", "Please provide name, email, password, and role")
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, domain.Invalid("", "Invalid role. Must be government, hospital, or user")
	}

	// Organization is what ties hospital/government accounts to a real
	// institution; plain users register without one.
	organization := strings.TrimSpace(req.Organization)
	if role != domain.RoleUser && organization == "" {
		return nil, domain.Invalid("", "Organization is required for hospital and government accounts")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal("failed to hash password", err)
	}

	user := &domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Organization: organization,
		Location:     strings.TrimSpace(req.Location),
		CreatedAt:    s.now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.logger.Warn("Signup rejected: duplicate email",
				zap.String("email", req.Email),
			)
			return nil, domain.Conflict("User with this email already exists")
		}
		return nil, domain.Internal("failed to create user", err)
	}

	token, err := s.tokens.Issue(user.UserID, user.Email, user.Role)
	if err != nil {
		return nil, domain.Internal("failed to issue token", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.UserID),
		zap.String("role", string(user.Role)),
	)
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, domain.Invalid("", "Please provide email and password")
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller; the reason field below stays in the logs.
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Login failed",
				zap.String("reason", "unknown_email"),
			)
			return nil, domain.Unauthenticated("Invalid credentials")
		}
		return nil, domain.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("Login failed",
			zap.String("user_id", user.UserID),
			zap.String("reason", "password_mismatch"),
		)
		return nil, domain.Unauthenticated("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.UserID, user.Email, user.Role)
	if err != nil {
		return nil, domain.Internal("failed to issue token", err)
	}

	s.logger.Info("User login successful",
		zap.String("user_id", user.UserID),
		zap.String("role", string(user.Role)),
	)
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("User not found")
		}
		return nil, domain.Internal("failed to look up user", err)
	}
	pub := user.Public()
	return &pub, nil
}
