package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/authgate/internal/services"
)

const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/auth/refresh"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler exposes the session lifecycle over HTTP. The refresh token
// travels only in an HttpOnly cookie scoped to the refresh path; the
// access token is returned in the body for bearer-header use.
type AuthHandler struct {
	sessions     *services.SessionService
	audit        *services.AuditService
	cookieSecure bool
	refreshTTL   time.Duration
}

func NewAuthHandler(sessions *services.SessionService, audit *services.AuditService, cookieSecure bool, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		audit:        audit,
		cookieSecure: cookieSecure,
		refreshTTL:   refreshTTL,
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, int(h.refreshTTL.Seconds()), refreshCookiePath, "", h.cookieSecure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", h.cookieSecure, true)
}

// Register handles account creation. It does not log the user in.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation error"})
		return
	}

	user, err := h.sessions.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.audit.Record(services.EventRegister, &user.ID, user.Email, c.ClientIP(), c.Request.UserAgent(), "")
	c.JSON(http.StatusCreated, gin.H{"message": "user created"})
}

// Login verifies credentials, sets the refresh cookie, and returns the
// access token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation error"})
		return
	}

	pair, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.audit.Record(services.EventLoginFailed, nil, req.Email, c.ClientIP(), c.Request.UserAgent(), "")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.audit.Record(services.EventLoginSuccess, nil, req.Email, c.ClientIP(), c.Request.UserAgent(), "")
	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken})
}

// Refresh mints a new access token from the refresh cookie. The refresh
// token is not rotated. On any failure the cookie is cleared so the
// client stops retrying a dead token.
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no refresh token provided"})
		return
	}

	accessToken, err := h.sessions.Refresh(refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		switch {
		case errors.Is(err, services.ErrInvalidRefreshToken):
			h.audit.Record(services.EventRefreshFailed, nil, "", c.ClientIP(), c.Request.UserAgent(), "invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	h.audit.Record(services.EventRefresh, nil, "", c.ClientIP(), c.Request.UserAgent(), "")
	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout revokes the refresh token server-side and clears the cookie.
// Always succeeds, even without a cookie. Access tokens issued earlier
// remain valid until their natural expiry.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)

	if refreshToken != "" {
		if err := h.sessions.Logout(refreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		h.audit.Record(services.EventLogout, nil, "", c.ClientIP(), c.Request.UserAgent(), "")
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
