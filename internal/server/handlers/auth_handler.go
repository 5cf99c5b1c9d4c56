package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/service/auth"
)

const userContextKey = "tacovision.user"
const tokenContextKey = "tacovision.token"

// AuthHandler handles login, logout and pin rotation.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	ID  string `json:"id" binding:"required"`
	PIN string `json:"pin" binding:"required"`
}

// Login exchanges an id/pin pair for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.ID, req.PIN)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id or pin"})
		return
	}
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout revokes the caller's session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := c.Get(tokenContextKey); ok {
		h.svc.Logout(token.(string))
	}
	c.Status(http.StatusNoContent)
}

type changePINRequest struct {
	CurrentPIN string `json:"currentPin" binding:"required"`
	NewPIN     string `json:"newPin" binding:"required"`
}

// ChangePIN rotates the caller's own credential.
func (h *AuthHandler) ChangePIN(c *gin.Context) {
	var req changePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	actor := CurrentUser(c)
	err := h.svc.ChangePIN(c.Request.Context(), actor, req.CurrentPIN, req.NewPIN)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current pin is incorrect"})
	case errors.Is(err, auth.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("pin change failed", zap.String("user", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to update pin"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// Middleware authenticates the bearer token and stores the user in the
// request context.
func (h *AuthHandler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, ok := h.svc.UserFromToken(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// RequireRole gates a route group behind a minimum role.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by the middleware.
func CurrentUser(c *gin.Context) models.User {
	if value, ok := c.Get(userContextKey); ok {
		if user, ok := value.(models.User); ok {
			return user
		}
	}
	return models.User{}
}
