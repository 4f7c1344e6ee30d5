package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/events-client/internal/transport/http/handler"
	"github.com/ErlanBelekov/events-client/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Events *handler.EventHandler
	Users  *handler.UserHandler
}

func NewRouter(logger *slog.Logger, h Handlers, jwtKey []byte, loginPerMinute int) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(jwtKey)

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/login", middleware.RateLimit(loginPerMinute), h.Auth.Login)
	auth.POST("/register", h.Auth.Register)
	auth.GET("/validate", authMW, h.Auth.Validate)

	// Protected event routes
	events := r.Group("/events", authMW)
	events.GET("", h.Events.List)
	events.POST("", h.Events.Create)
	events.GET("/:id", h.Events.GetByID)
	events.DELETE("/:id", h.Events.Delete)
	events.GET("/:id/attend", h.Events.Attendees)
	events.POST("/:id/attend", h.Events.Attend)
	events.DELETE("/:id/attend", h.Events.Unattend)

	// Protected user routes
	users := r.Group("/users", authMW)
	users.GET("/me", h.Users.Me)
	users.PUT("/me", h.Users.UpdateProfile)
	users.PUT("/me/photo", h.Users.UpdateAvatar)
	users.PUT("/me/password", h.Users.UpdatePassword)
	users.GET("/:id", h.Users.GetByID)

	return r
}
