package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/mongodb"
	"github.com/tacovision/backend/internal/service/auth"
)

// UserHandler handles user administration.
type UserHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewUserHandler constructs the HTTP handler adapter.
func NewUserHandler(svc *auth.Service, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{svc: svc, logger: logger}
}

// List returns all accounts.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type createUserRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

// Create adds a new account.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), CurrentUser(c), models.User{
		ID:   req.ID,
		Name: req.Name,
		Role: models.Role(req.Role),
		PIN:  req.PIN,
	})
	switch {
	case errors.Is(err, auth.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrDuplicateUserID):
		c.JSON(http.StatusConflict, gin.H{"error": "user id already exists"})
	case err != nil:
		h.logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to create user"})
	default:
		c.JSON(http.StatusCreated, user)
	}
}

// Delete removes an account.
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.svc.DeleteUser(c.Request.Context(), CurrentUser(c), c.Param("id"))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to delete user", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}
