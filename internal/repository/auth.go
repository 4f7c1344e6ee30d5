package repository

import (
	"context"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

type AuthRepository interface {
	// Login returns the access token; it does not persist it.
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, user domain.User) (*domain.User, error)
	// Validate succeeds iff the server accepts the stored credential.
	Validate(ctx context.Context) error
}
