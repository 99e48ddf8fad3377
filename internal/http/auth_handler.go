package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/service"
)

// AuthHandler 注册/登录/当前用户
type AuthHandler struct {
	auth   service.AuthService
	tokens *service.TokenService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, tokens *service.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, logger: logger}
}

// Signup 用户注册
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	resp, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		// Duplicate email keeps the dashboard API's historical 400 instead
		// of 409; the domain error stays Conflict for callers that care.
		if de, ok := domain.AsError(err); ok && de.Kind == domain.KindConflict {
			writeJSON(w, http.StatusBadRequest, Fail(de.Message))
			return
		}
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, Ok("User registered successfully", map[string]any{
		"token": resp.Token,
		"user":  resp.User,
	}))
}

// Login 用户登录
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok("Login successful", map[string]any{
		"token": resp.Token,
		"user":  resp.User,
	}))
}

// Me 返回当前调用者自己的资料。
// Token 在这里内联校验而不是走认证门：subject 已被删除时本端点约定返回
// 404 而不是门的 401。
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Fail("No token provided"))
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		h.logger.Debug("Token rejected", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, Fail("Invalid or expired token"))
		return
	}

	user, err := h.auth.Profile(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, Ok("", map[string]any{"user": user}))
}
