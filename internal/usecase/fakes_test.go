package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

// ---- fakes ----

type fakeAuthRepo struct {
	login    func(ctx context.Context, creds domain.Credentials) (string, error)
	register func(ctx context.Context, user domain.User) (*domain.User, error)
	validate func(ctx context.Context) error
}

func (r *fakeAuthRepo) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return r.login(ctx, creds)
}

func (r *fakeAuthRepo) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	return r.register(ctx, user)
}

func (r *fakeAuthRepo) Validate(ctx context.Context) error {
	return r.validate(ctx)
}

type fakeEventRepo struct {
	list          func(ctx context.Context) ([]domain.Event, error)
	getByID       func(ctx context.Context, id int64) (*domain.Event, error)
	create        func(ctx context.Context, event domain.Event) (*domain.Event, error)
	delete        func(ctx context.Context, id int64) error
	listAttendees func(ctx context.Context, id int64) ([]domain.User, error)
	attend        func(ctx context.Context, id int64) error
	unattend      func(ctx context.Context, id int64) error
}

func (r *fakeEventRepo) List(ctx context.Context) ([]domain.Event, error) { return r.list(ctx) }

func (r *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getByID(ctx, id)
}

func (r *fakeEventRepo) Create(ctx context.Context, event domain.Event) (*domain.Event, error) {
	return r.create(ctx, event)
}

func (r *fakeEventRepo) Delete(ctx context.Context, id int64) error { return r.delete(ctx, id) }

func (r *fakeEventRepo) ListAttendees(ctx context.Context, id int64) ([]domain.User, error) {
	return r.listAttendees(ctx, id)
}

func (r *fakeEventRepo) Attend(ctx context.Context, id int64) error   { return r.attend(ctx, id) }
func (r *fakeEventRepo) Unattend(ctx context.Context, id int64) error { return r.unattend(ctx, id) }

// memStore is a minimal credential slot with injectable failures.
type memStore struct {
	mu       sync.Mutex
	token    string
	getErr   error
	clearErr error
	cleared  int
}

func (s *memStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.getErr
}

func (s *memStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	return nil
}

// ---- helpers ----

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func unauthorized() error {
	return domain.NewAPIError(401, "Unauthorized")
}
