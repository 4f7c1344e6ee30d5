package httpapi

import (
	"context"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

type AuthRepository struct {
	t  *Transport
	ep endpoints
}

// POST /auth/login -> {accessToken}
func (r *AuthRepository) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	env, err := Post[tokenEnvelope](ctx, r.t, r.ep.url("auth", "login"), creds)
	if err != nil {
		return "", err
	}
	return env.AccessToken, nil
}

// POST /auth/register -> {user}
func (r *AuthRepository) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	env, err := Post[userEnvelope](ctx, r.t, r.ep.url("auth", "register"), user)
	if err != nil {
		return nil, err
	}
	u := env.User.Sanitized()
	return &u, nil
}

// GET /auth/validate -> no content
func (r *AuthRepository) Validate(ctx context.Context) error {
	return r.t.Do(ctx, http.MethodGet, r.ep.url("auth", "validate"), nil, nil)
}
