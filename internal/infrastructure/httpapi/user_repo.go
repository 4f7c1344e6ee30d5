package httpapi

import (
	"context"
	"net/http"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

type UserRepository struct {
	t  *Transport
	ep endpoints
}

// Get fetches /users/{id}, or /users/me when userID is 0.
func (r *UserRepository) Get(ctx context.Context, userID int64) (*domain.User, error) {
	target := r.ep.url("users", "me")
	if userID != 0 {
		target = r.ep.url("users", id(userID))
	}
	env, err := Get[userEnvelope](ctx, r.t, target)
	if err != nil {
		return nil, err
	}
	u := env.User.Sanitized()
	return &u, nil
}

type profileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UserRepository) UpdateProfile(ctx context.Context, name, email string) error {
	return r.t.Do(ctx, http.MethodPut, r.ep.url("users", "me"), profileUpdate{Name: name, Email: email}, nil)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, avatar string) (string, error) {
	env, err := Put[avatarEnvelope](ctx, r.t, r.ep.url("users", "me", "photo"), avatarEnvelope{Avatar: avatar})
	if err != nil {
		return "", err
	}
	return env.Avatar, nil
}

type passwordUpdate struct {
	Password string `json:"password"`
}

func (r *UserRepository) UpdatePassword(ctx context.Context, password string) error {
	return r.t.Do(ctx, http.MethodPut, r.ep.url("users", "me", "password"), passwordUpdate{Password: password}, nil)
}
