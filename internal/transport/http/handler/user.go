package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/gin-gonic/gin"
)

type profileStore interface {
	FindUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) error
	UpdateAvatar(ctx context.Context, id int64, avatar string) error
}

type UserHandler struct {
	users    profileStore
	accounts accountUsecaser
	logger   *slog.Logger
}

func NewUserHandler(users profileStore, accounts accountUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, accounts: accounts, logger: logger.With("component", "user_handler")}
}

type updateProfileRequest struct {
	Name  string `json:"name"  binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

type updatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	h.respondUser(c, currentUser(c))
}

// GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondUser(c, id)
}

func (h *UserHandler) respondUser(c *gin.Context, id int64) {
	user, err := h.users.FindUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	u := user.Sanitized()
	u.Me = id == currentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.users.UpdateProfile(c.Request.Context(), currentUser(c), req.Name, req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /users/me/photo
// Returns the avatar as stored, which is what clients should display.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ctx := c.Request.Context()
	if err := h.users.UpdateAvatar(ctx, currentUser(c), req.Avatar); err != nil {
		respondError(c, h.logger, err)
		return
	}
	user, err := h.users.FindUser(ctx, currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": user.Avatar})
}

// PUT /users/me/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.accounts.ChangePassword(c.Request.Context(), currentUser(c), req.Password); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
