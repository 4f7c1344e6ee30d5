package repository

import "context"

// CredentialStore is a single named slot holding the bearer token.
// Get returns "" when nothing is stored.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
