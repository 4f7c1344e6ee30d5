package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newSession(auth *fakeAuthRepo, store *memStore, nav usecase.Navigator) *usecase.SessionUsecase {
	return usecase.NewSessionUsecase(auth, store, nav, discardLogger())
}

// ---- Login / Persist ----

func TestLogin_ReturnsTokenWithoutPersisting(t *testing.T) {
	var sent domain.Credentials
	auth := &fakeAuthRepo{
		login: func(_ context.Context, creds domain.Credentials) (string, error) {
			sent = creds
			return "tok123", nil
		},
	}
	store := &memStore{}

	token, err := newSession(auth, store, nil).Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	require.Equal(t, "tok123", token)
	require.Equal(t, "a@b.com", sent.Email)
	require.Empty(t, store.token, "login must not write the credential")
}

func TestLogin_PropagatesErrorUnchanged(t *testing.T) {
	apiErr := domain.NewAPIError(400, "email is required")
	auth := &fakeAuthRepo{
		login: func(context.Context, domain.Credentials) (string, error) { return "", apiErr },
	}

	_, err := newSession(auth, &memStore{}, nil).Login(context.Background(), domain.Credentials{})
	require.Same(t, apiErr, err)
}

func TestPersist_StoresToken(t *testing.T) {
	store := &memStore{}
	require.NoError(t, newSession(&fakeAuthRepo{}, store, nil).Persist(context.Background(), "tok"))
	require.Equal(t, "tok", store.token)
}

func TestPersist_RejectsEmptyToken(t *testing.T) {
	err := newSession(&fakeAuthRepo{}, &memStore{}, nil).Persist(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

// ---- CheckValidity ----

func TestCheckValidity_NoCredentialSkipsServer(t *testing.T) {
	auth := &fakeAuthRepo{
		validate: func(context.Context) error {
			t.Fatal("validate must not be called without a credential")
			return nil
		},
	}

	err := newSession(auth, &memStore{}, nil).CheckValidity(context.Background())
	require.ErrorIs(t, err, domain.ErrNoCredential)
}

func TestCheckValidity_LoginThenValidate(t *testing.T) {
	const good = "tok123"
	store := &memStore{}
	auth := &fakeAuthRepo{
		login: func(context.Context, domain.Credentials) (string, error) { return good, nil },
		validate: func(context.Context) error {
			if store.token != good {
				return unauthorized()
			}
			return nil
		},
	}
	s := newSession(auth, store, nil)
	ctx := context.Background()

	token, err := s.Login(ctx, domain.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Persist(ctx, token))
	require.NoError(t, s.CheckValidity(ctx))

	require.NoError(t, s.Persist(ctx, "expired"))
	err = s.CheckValidity(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}

func TestCheckValidity_StoreFailure(t *testing.T) {
	store := &memStore{getErr: errors.New("disk gone")}
	err := newSession(&fakeAuthRepo{}, store, nil).CheckValidity(context.Background())
	require.ErrorContains(t, err, "disk gone")
}

// ---- Resume ----

func TestResume(t *testing.T) {
	netErr := &domain.APIError{Label: "Network Error", Err: domain.ErrNetwork}

	cases := []struct {
		name        string
		token       string
		validateErr error
		want        bool
		wantErr     error
		wantToken   string
	}{
		{name: "anonymous", token: "", want: false},
		{name: "valid", token: "tok", want: true, wantToken: "tok"},
		{name: "rejected clears", token: "tok", validateErr: unauthorized(), want: false, wantToken: ""},
		{name: "network error propagates", token: "tok", validateErr: netErr, wantErr: domain.ErrNetwork, wantToken: "tok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{token: tc.token}
			auth := &fakeAuthRepo{validate: func(context.Context) error { return tc.validateErr }}

			got, err := newSession(auth, store, nil).Resume(context.Background())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.wantToken, store.token)
		})
	}
}

// ---- Logout ----

func TestLogout_ClearsAndNavigates(t *testing.T) {
	store := &memStore{token: "tok"}
	navigated := false

	newSession(&fakeAuthRepo{}, store, usecase.NavigatorFunc(func() { navigated = true })).Logout(context.Background())

	require.Empty(t, store.token)
	require.True(t, navigated)
}

func TestLogout_NavigatesEvenWhenClearFails(t *testing.T) {
	store := &memStore{token: "tok", clearErr: errors.New("read-only")}
	navigated := false

	newSession(&fakeAuthRepo{}, store, usecase.NavigatorFunc(func() { navigated = true })).Logout(context.Background())

	require.Equal(t, 1, store.cleared)
	require.True(t, navigated)
}

// ---- Token / ExpiresAt ----

func TestToken_Anonymous(t *testing.T) {
	_, err := newSession(&fakeAuthRepo{}, &memStore{}, nil).Token(context.Background())
	require.ErrorIs(t, err, domain.ErrNoCredential)
}

func TestExpiresAt_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1,
		"exp": exp.Unix(),
	}).SignedString([]byte("some-key-the-client-never-sees!!"))
	require.NoError(t, err)

	got, err := newSession(&fakeAuthRepo{}, &memStore{token: signed}, nil).ExpiresAt(context.Background())
	require.NoError(t, err)
	require.True(t, got.Equal(exp), "got %v want %v", got, exp)
}

func TestExpiresAt_OpaqueToken(t *testing.T) {
	_, err := newSession(&fakeAuthRepo{}, &memStore{token: "not-a-jwt"}, nil).ExpiresAt(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}
