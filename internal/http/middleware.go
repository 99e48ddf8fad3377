package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
	"github.com/Rohanpawar9921/Swasthya/internal/service"
)

type ctxKey int

const userCtxKey ctxKey = 0

// Guard 请求守卫：要么附加身份继续，要么短路返回错误响应。
// Guards compose into an explicit ordered pipeline via Chain.
type Guard func(http.HandlerFunc) http.HandlerFunc

// Chain applies guards left to right: Chain(h, a, b) runs a, then b, then h.
func Chain(h http.HandlerFunc, guards ...Guard) http.HandlerFunc {
	for i := len(guards) - 1; i >= 0; i-- {
		h = guards[i](h)
	}
	return h
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// UserFromContext returns the identity attached by the auth gate.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*domain.User)
	return u, ok
}

// Authenticator 认证门：解析 Bearer Token 并将用户记录挂到请求上下文。
// 这是匿名流量与已识别流量之间唯一的闸口；不做角色过滤。
type Authenticator struct {
	tokens *service.TokenService
	users  repository.UsersRepo
	logger *zap.Logger
}

func NewAuthenticator(tokens *service.TokenService, users repository.UsersRepo, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Authenticate rejects the request with 401 when no identity can be
// established. Expired, malformed and badly signed tokens all look the same
// to the caller; the distinction is logged.
func (a *Authenticator) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, Fail("Authentication required"))
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			a.logger.Debug("Token rejected", zap.Error(err))
			writeJSON(w, http.StatusUnauthorized, Fail("Invalid or expired token"))
			return
		}

		// The subject may have been deleted after the token was issued.
		user, err := a.users.GetUserByID(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				a.logger.Debug("Token subject no longer exists", zap.String("user_id", claims.Subject))
				writeJSON(w, http.StatusUnauthorized, Fail("User not found"))
				return
			}
			a.logger.Error("Auth lookup failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
			return
		}

		next(w, r.WithContext(withUser(r.Context(), user)))
	}
}

// RequireRoles 角色门：必须排在认证门之后。
// Identity missing from context is a wiring bug, not a normal-path condition.
func RequireRoles(roles ...domain.Role) Guard {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next(w, r)
					return
				}
			}
			writeJSON(w, http.StatusForbidden, Fail("Access denied. Insufficient permissions"))
		}
	}
}

// CORS allows the dashboard frontend to call the API from another origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
