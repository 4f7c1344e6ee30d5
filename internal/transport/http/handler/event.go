package handler

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	events repository.EventStore
	logger *slog.Logger
}

func NewEventHandler(events repository.EventStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger.With("component", "event_handler")}
}

type createEventRequest struct {
	Title       string       `json:"title"       binding:"required"`
	Description string       `json:"description"`
	Price       domain.Price `json:"price"       binding:"gt=0"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	Address     string       `json:"address"`
	Image       string       `json:"image"`
	Date        string       `json:"date"        binding:"required"`
}

// GET /events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	event, err := h.events.GetEvent(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Address:     req.Address,
		Image:       req.Image,
		Date:        req.Date,
	}, currentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// DELETE /events/:id
// Only the creator may delete; others get 403.
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.events.DeleteEvent(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /events/:id/attend
func (h *EventHandler) Attendees(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	users, err := h.events.Attendees(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// POST /events/:id/attend
func (h *EventHandler) Attend(c *gin.Context) {
	h.setAttendance(c, true, http.StatusCreated)
}

// DELETE /events/:id/attend
func (h *EventHandler) Unattend(c *gin.Context) {
	h.setAttendance(c, false, http.StatusNoContent)
}

func (h *EventHandler) setAttendance(c *gin.Context, attend bool, status int) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.events.SetAttendance(c.Request.Context(), id, currentUser(c), attend); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(status)
}
