package repository

import (
	"context"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

// UserRepository reads and updates profiles. Updates always target the
// caller's own profile, resolved server-side from the credential.
type UserRepository interface {
	// Get returns the user with id, or the caller's own profile when id is 0.
	Get(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, name, email string) error
	// UpdateAvatar returns the stored avatar reference, which may differ
	// from the submitted value.
	UpdateAvatar(ctx context.Context, avatar string) (string, error)
	UpdatePassword(ctx context.Context, password string) error
}
