package repository

import (
	"context"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

// The interfaces below back the reference API server, not the client.

// Account is a user together with its password hash.
type Account struct {
	User         domain.User
	PasswordHash []byte
}

type AccountStore interface {
	// CreateAccount assigns the id. Returns domain.ErrEmailTaken on a duplicate email.
	CreateAccount(ctx context.Context, user domain.User, passwordHash []byte) (*domain.User, error)
	// FindAccountByEmail returns domain.ErrNotFound when no user has the email.
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	FindUser(ctx context.Context, id int64) (*domain.User, error)

	SetLocation(ctx context.Context, id int64, lat, lng float64) error
	UpdateProfile(ctx context.Context, id int64, name, email string) error
	UpdateAvatar(ctx context.Context, id int64, avatar string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash []byte) error
}

// EventStore projects numAttend, attend, mine and distance for viewer.
type EventStore interface {
	ListEvents(ctx context.Context, viewer int64) ([]domain.Event, error)
	GetEvent(ctx context.Context, id, viewer int64) (*domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event, creator int64) (*domain.Event, error)
	// DeleteEvent returns domain.ErrForbidden when requester is not the creator.
	DeleteEvent(ctx context.Context, id, requester int64) error

	Attendees(ctx context.Context, id int64) ([]domain.User, error)
	SetAttendance(ctx context.Context, id, user int64, attend bool) error
}
