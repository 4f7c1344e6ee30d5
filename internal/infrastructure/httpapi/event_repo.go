package httpapi

import (
	"context"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

type EventRepository struct {
	t  *Transport
	ep endpoints
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	env, err := Get[eventsEnvelope](ctx, r.t, r.ep.url("events"))
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, len(env.Events))
	for i, e := range env.Events {
		events[i] = e.Sanitized()
	}
	return events, nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID int64) (*domain.Event, error) {
	env, err := Get[eventEnvelope](ctx, r.t, r.ep.url("events", id(eventID)))
	if err != nil {
		return nil, err
	}
	event := env.Event.Sanitized()
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (*domain.Event, error) {
	event.ID = 0 // assigned by the server
	env, err := Post[eventEnvelope](ctx, r.t, r.ep.url("events"), event)
	if err != nil {
		return nil, err
	}
	event := env.Event.Sanitized()
	return &event, nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID int64) error {
	return r.t.Delete(ctx, r.ep.url("events", id(eventID)))
}

func (r *EventRepository) ListAttendees(ctx context.Context, eventID int64) ([]domain.User, error) {
	env, err := Get[usersEnvelope](ctx, r.t, r.ep.url("events", id(eventID), "attend"))
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, len(env.Users))
	for i, u := range env.Users {
		users[i] = u.Sanitized()
	}
	return users, nil
}

func (r *EventRepository) Attend(ctx context.Context, eventID int64) error {
	return r.t.Do(ctx, http.MethodPost, r.ep.url("events", id(eventID), "attend"), nil, nil)
}

func (r *EventRepository) Unattend(ctx context.Context, eventID int64) error {
	return r.t.Delete(ctx, r.ep.url("events", id(eventID), "attend"))
}
