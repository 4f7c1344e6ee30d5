package usecase

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/metrics"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"golang.org/x/sync/singleflight"
)

// EventCollection is the in-memory list behind an events page. The server
// is always asked first; local state changes only after it confirms.
type EventCollection struct {
	events repository.EventRepository
	logger *slog.Logger

	mu      sync.Mutex
	list    []domain.Event
	loaded  bool
	waiting map[int64]int

	toggles singleflight.Group
}

func NewEventCollection(events repository.EventRepository, logger *slog.Logger) *EventCollection {
	return &EventCollection{
		events:  events,
		logger:  logger.With("component", "event_collection"),
		waiting: make(map[int64]int),
	}
}

// Load replaces the list with the server's. On error the current list is
// kept as is.
func (c *EventCollection) Load(ctx context.Context) ([]domain.Event, error) {
	fetched, err := c.events.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]domain.Event, len(fetched))
	for i, e := range fetched {
		list[i] = e.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = list
	c.loaded = true
	return c.snapshot(), nil
}

// Events returns a copy of the list in its current order.
func (c *EventCollection) Events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *EventCollection) SortByPrice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	slices.SortStableFunc(c.list, func(a, b domain.Event) int {
		return cmp.Compare(a.Price, b.Price)
	})
}

// SortByDate orders chronologically. Dates that do not parse go last,
// compared as strings.
func (c *EventCollection) SortByDate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	slices.SortStableFunc(c.list, compareDates)
}

func compareDates(a, b domain.Event) int {
	ta, okA := domain.ParseDate(a.Date)
	tb, okB := domain.ParseDate(b.Date)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a.Date, b.Date)
	}
}

// Filter returns the events whose title or description contains query,
// ignoring case, in the list's current order. The list is not modified.
func (c *EventCollection) Filter(query string) []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]domain.Event, 0, len(c.list))
	for _, e := range c.list {
		if q == "" ||
			strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// ToggleAttendance joins or leaves the event depending on its current
// attend flag. A toggle for an event that already has one in flight shares
// that call's result instead of sending a second request. The request runs
// to completion even if ctx is cancelled; ctx only bounds how long this
// caller waits for it.
func (c *EventCollection) ToggleAttendance(ctx context.Context, eventID int64) (domain.Event, error) {
	c.mu.Lock()
	i := c.indexOf(eventID)
	if i < 0 {
		c.mu.Unlock()
		return domain.Event{}, fmt.Errorf("toggle attendance for event %d: %w", eventID, domain.ErrEventNotInView)
	}
	before := c.list[i].Clone()
	c.mu.Unlock()

	var leader bool
	ch := c.toggles.DoChan(strconv.FormatInt(eventID, 10), func() (any, error) {
		leader = true
		return c.toggle(context.WithoutCancel(ctx), before)
	})

	c.mu.Lock()
	c.waiting[eventID]++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.waiting[eventID]--; c.waiting[eventID] <= 0 {
			delete(c.waiting, eventID)
		}
		c.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return domain.Event{}, ctx.Err()
	case res := <-ch:
		if !leader {
			metrics.AttendanceTogglesDeduplicated.Inc()
		}
		if res.Err != nil {
			return domain.Event{}, res.Err
		}
		return res.Val.(domain.Event).Clone(), nil
	}
}

// PendingToggles reports how many callers are waiting on an attendance
// toggle for the event. Page code uses it to keep the control disabled.
func (c *EventCollection) PendingToggles(eventID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting[eventID]
}

func (c *EventCollection) toggle(ctx context.Context, before domain.Event) (domain.Event, error) {
	target := !before.Attend
	action := "join"
	call := c.events.Attend
	if !target {
		action = "leave"
		call = c.events.Unattend
	}

	if err := call(ctx, before.ID); err != nil {
		metrics.AttendanceTogglesTotal.WithLabelValues(action, "failure").Inc()
		c.logger.ErrorContext(ctx, "toggle attendance", "event_id", before.ID, "action", action, "error", err)
		return domain.Event{}, err
	}
	metrics.AttendanceTogglesTotal.WithLabelValues(action, "success").Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	// The list may have been reloaded or trimmed while the call was out.
	if i := c.indexOf(before.ID); i >= 0 {
		applyAttendance(&c.list[i], target)
		return c.list[i].Clone(), nil
	}
	applyAttendance(&before, target)
	return before, nil
}

// applyAttendance moves attend and numAttend together.
func applyAttendance(e *domain.Event, attend bool) {
	if e.Attend == attend {
		return
	}
	e.Attend = attend
	if attend {
		e.NumAttend++
	} else {
		e.NumAttend--
	}
}

// DeleteEvent removes the event once the server confirms. On failure the
// list is untouched and the error is returned.
func (c *EventCollection) DeleteEvent(ctx context.Context, eventID int64) error {
	if err := c.events.Delete(ctx, eventID); err != nil {
		c.logger.ErrorContext(ctx, "delete event", "event_id", eventID, "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = slices.DeleteFunc(c.list, func(e domain.Event) bool { return e.ID == eventID })
	return nil
}

// CreateEvent creates the event and, when a list is loaded, appends the
// server's copy to it.
func (c *EventCollection) CreateEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	created, err := c.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		c.list = append(c.list, created.Clone())
	}
	return created, nil
}

func (c *EventCollection) indexOf(eventID int64) int {
	return slices.IndexFunc(c.list, func(e domain.Event) bool { return e.ID == eventID })
}

func (c *EventCollection) snapshot() []domain.Event {
	out := make([]domain.Event, len(c.list))
	for i, e := range c.list {
		out[i] = e.Clone()
	}
	return out
}
