package repository

import (
	"context"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, event domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error

	// Attendance of the caller.
	ListAttendees(ctx context.Context, id int64) ([]domain.User, error)
	Attend(ctx context.Context, id int64) error
	Unattend(ctx context.Context, id int64) error
}
