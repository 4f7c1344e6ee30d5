package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/metrics"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

// Navigator is told to leave authenticated pages once the session ends.
type Navigator interface {
	ToAnonymousEntry()
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) ToAnonymousEntry() { f() }

// SessionUsecase owns the stored credential. It is the only writer of the
// credential store; the transport only reads it.
type SessionUsecase struct {
	auth   repository.AuthRepository
	store  repository.CredentialStore
	nav    Navigator
	logger *slog.Logger
}

func NewSessionUsecase(auth repository.AuthRepository, store repository.CredentialStore, nav Navigator, logger *slog.Logger) *SessionUsecase {
	return &SessionUsecase{
		auth:   auth,
		store:  store,
		nav:    nav,
		logger: logger.With("component", "session"),
	}
}

// Login exchanges credentials for an access token. The token is not stored;
// call Persist once the caller decides to keep it.
func (s *SessionUsecase) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return s.auth.Login(ctx, creds)
}

func (s *SessionUsecase) Persist(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	if err := s.store.Set(ctx, token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	return nil
}

func (s *SessionUsecase) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	return s.auth.Register(ctx, user)
}

// CheckValidity asks the server whether the stored credential is still
// accepted. Any error means "not logged in"; ErrNoCredential is returned
// without a network call when nothing is stored.
func (s *SessionUsecase) CheckValidity(ctx context.Context) error {
	token, err := s.store.Get(ctx)
	if err != nil {
		metrics.SessionChecksTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		metrics.SessionChecksTotal.WithLabelValues("anonymous").Inc()
		return domain.ErrNoCredential
	}

	err = s.auth.Validate(ctx)
	switch {
	case err == nil:
		metrics.SessionChecksTotal.WithLabelValues("valid").Inc()
	case errors.Is(err, domain.ErrUnauthorized):
		metrics.SessionChecksTotal.WithLabelValues("rejected").Inc()
	default:
		metrics.SessionChecksTotal.WithLabelValues("error").Inc()
	}
	return err
}

// Resume reports whether a usable session already exists. A credential the
// server rejects is cleared; failures other than a rejection are returned.
func (s *SessionUsecase) Resume(ctx context.Context) (bool, error) {
	err := s.CheckValidity(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNoCredential):
		return false, nil
	case errors.Is(err, domain.ErrUnauthorized):
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			return false, fmt.Errorf("clear rejected credential: %w", clearErr)
		}
		s.logger.InfoContext(ctx, "stored credential rejected, cleared")
		return false, nil
	default:
		return false, err
	}
}

// Logout drops the credential and navigates to the anonymous entry point.
// It never fails; a store error is only logged.
func (s *SessionUsecase) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "clear credential", "error", err)
	}
	if s.nav != nil {
		s.nav.ToAnonymousEntry()
	}
}

// Token returns the stored credential or ErrNoCredential.
func (s *SessionUsecase) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	if token == "" {
		return "", domain.ErrNoCredential
	}
	return token, nil
}

// ExpiresAt reads the exp claim of the stored token without verifying the
// signature. Only the server can say whether the token is valid.
func (s *SessionUsecase) ExpiresAt(ctx context.Context) (time.Time, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return time.Time{}, err
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, domain.ErrInvalidToken
	}
	return exp.Time, nil
}
