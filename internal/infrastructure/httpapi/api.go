package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
)

// API groups the resource accessors that share one Transport.
type API struct {
	Auth   *AuthRepository
	Events *EventRepository
	Users  *UserRepository
}

func New(baseURL string, t *Transport) (*API, error) {
	ep, err := newEndpoints(baseURL)
	if err != nil {
		return nil, err
	}
	return &API{
		Auth:   &AuthRepository{t: t, ep: ep},
		Events: &EventRepository{t: t, ep: ep},
		Users:  &UserRepository{t: t, ep: ep},
	}, nil
}

type endpoints struct {
	base *url.URL
}

func newEndpoints(baseURL string) (endpoints, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return endpoints{}, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return endpoints{}, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	return endpoints{base: u}, nil
}

func (e endpoints) url(parts ...string) string {
	return e.base.JoinPath(parts...).String()
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
