package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/gin-gonic/gin"
)

// accountUsecaser is the subset of AccountUsecase the handlers need.
// Defined here (point of use) so tests can inject a fake.
type accountUsecaser interface {
	Register(ctx context.Context, user domain.User) (*domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	ChangePassword(ctx context.Context, userID int64, password string) error
}

type AuthHandler struct {
	accounts accountUsecaser
	logger   *slog.Logger
}

func NewAuthHandler(accounts accountUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string   `json:"email"    binding:"required,email"`
	Password string   `json:"password" binding:"required"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type registerRequest struct {
	Name     string  `json:"name"     binding:"required"`
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Avatar   string  `json:"avatar"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// POST /auth/login
// Returns {"accessToken": "<jwt>"}; 401 for a wrong email or password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.accounts.Login(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Lat:      req.Lat,
		Lng:      req.Lng,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"accessToken": token})
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
		Lat:      req.Lat,
		Lng:      req.Lng,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.Sanitized()})
}

// GET /auth/validate
// Runs behind Auth, so reaching it means the token is good.
func (h *AuthHandler) Validate(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
