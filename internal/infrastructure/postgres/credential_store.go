package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialStore keeps the bearer token in one row keyed by slot name, so
// several client processes on different hosts share a session. The table
// comes from Migrate.
type CredentialStore struct {
	db   DB
	name string
}

func NewCredentialStore(db DB, name string) *CredentialStore {
	return &CredentialStore{db: db, name: name}
}

func (s *CredentialStore) Get(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRow(ctx,
		`SELECT token FROM client_credentials WHERE name = $1`,
		s.name,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get credential: %w", err)
	}
	return token, nil
}

func (s *CredentialStore) Set(ctx context.Context, token string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO client_credentials (name, token) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET token = EXCLUDED.token, updated_at = NOW()`,
		s.name, token,
	)
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM client_credentials WHERE name = $1`, s.name)
	if err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
