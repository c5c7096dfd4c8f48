package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lukasmoe/authgate/internal/middleware"
	"github.com/lukasmoe/authgate/internal/services"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	sessions *services.SessionService
}

func NewUserHandler(sessions *services.SessionService) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// Me returns the current user resolved from the verified access token.
// GET /me
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.sessions.CurrentUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}
