package httpapi

import "github.com/ErlanBelekov/events-client/internal/domain"

// envelope marks the wrapper shapes the API returns; each has exactly one
// required field, so a body missing it is rejected instead of unwrapped
// into a zero value.
type envelope interface {
	envelope()
}

type eventsEnvelope struct {
	Events []domain.Event `json:"events" validate:"required"`
}

type eventEnvelope struct {
	Event *domain.Event `json:"event" validate:"required"`
}

type userEnvelope struct {
	User *domain.User `json:"user" validate:"required"`
}

type usersEnvelope struct {
	Users []domain.User `json:"users" validate:"required"`
}

type tokenEnvelope struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type avatarEnvelope struct {
	Avatar string `json:"avatar" validate:"required"`
}

func (eventsEnvelope) envelope() {}
func (eventEnvelope) envelope()  {}
func (userEnvelope) envelope()   {}
func (usersEnvelope) envelope()  {}
func (tokenEnvelope) envelope()  {}
func (avatarEnvelope) envelope() {}
