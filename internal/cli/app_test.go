package cli_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/events-client/internal/cli"
	"github.com/ErlanBelekov/events-client/internal/email"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/httpapi"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/localstore"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/memory"
	httptransport "github.com/ErlanBelekov/events-client/internal/transport/http"
	"github.com/ErlanBelekov/events-client/internal/transport/http/handler"
	"github.com/ErlanBelekov/events-client/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testJWTKey = "cli-test-secret-that-is-32-chars-long"

type env struct {
	t      *testing.T
	api    *httpapi.API
	store  *localstore.MemoryStore
	logger *slog.Logger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	backend := memory.NewStore()
	accounts := usecase.NewAccountUsecase(backend, email.NewSender("local", "", "", logger), []byte(testJWTKey), logger)
	srv := httptest.NewServer(httptransport.NewRouter(logger, httptransport.Handlers{
		Auth:   handler.NewAuthHandler(accounts, logger),
		Events: handler.NewEventHandler(backend, logger),
		Users:  handler.NewUserHandler(backend, accounts, logger),
	}, []byte(testJWTKey), 100))
	t.Cleanup(srv.Close)

	store := localstore.NewMemoryStore()
	api, err := httpapi.New(srv.URL, httpapi.NewTransport(store, logger).WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return &env{t: t, api: api, store: store, logger: logger}
}

// run executes one eventsctl invocation with stdin set to input.
func (e *env) run(input string, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	app := cli.NewApp(cli.Deps{
		API:     e.api,
		Store:   e.store,
		Logger:  e.logger,
		In:      strings.NewReader(input),
		Out:     &out,
		Err:     &errOut,
		StdinFD: -1,
	})
	err := app.Run(context.Background(), args)
	return out.String(), errOut.String(), err
}

func (e *env) mustRun(input string, args ...string) string {
	e.t.Helper()
	out, errOut, err := e.run(input, args...)
	require.NoError(e.t, err, "eventsctl %v: %s", args, errOut)
	return out
}

func (e *env) signIn(name, mail string) {
	e.t.Helper()
	e.mustRun("pw\n", "register", "-name", name, "-email", mail)
	e.mustRun("pw\n", "login", "-email", mail, "-lat", "42.87", "-lng", "74.59")
}

func TestRun_Help(t *testing.T) {
	out := newEnv(t).mustRun("", "help")
	require.Contains(t, out, "events [-sort price|date] [-q text]")
}

func TestRun_UnknownCommand(t *testing.T) {
	_, errOut, err := newEnv(t).run("", "frobnicate")
	require.ErrorIs(t, err, cli.ErrUsage)
	require.Contains(t, errOut, "frobnicate")
}

func TestRun_ProtectedCommandsNeedSession(t *testing.T) {
	e := newEnv(t)

	_, errOut, err := e.run("", "events")
	require.ErrorIs(t, err, cli.ErrNotLoggedIn)
	require.Contains(t, errOut, "eventsctl login")

	require.NoError(t, e.store.Set(context.Background(), "forged"))
	_, _, err = e.run("", "whoami")
	require.ErrorIs(t, err, cli.ErrNotLoggedIn)
}

func TestRun_LoginPromptsAndPersists(t *testing.T) {
	e := newEnv(t)
	e.mustRun("pw\n", "register", "-name", "Ann", "-email", "ann@x.io")

	out := e.mustRun("ann@x.io\npw\n", "login")
	require.Contains(t, out, "Logged in.")

	token, err := e.store.Get(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.Contains(t, e.mustRun("", "login"), "Already logged in.")
	require.Contains(t, e.mustRun("", "whoami"), "Ann <ann@x.io>")
}

func TestRun_LoginReplacesRejectedCredential(t *testing.T) {
	e := newEnv(t)
	e.mustRun("pw\n", "register", "-name", "Ann", "-email", "ann@x.io")
	require.NoError(t, e.store.Set(context.Background(), "stale"))

	require.Contains(t, e.mustRun("pw\n", "login", "-email", "ann@x.io"), "Logged in.")
	token, _ := e.store.Get(context.Background())
	require.NotEqual(t, "stale", token)
}

func TestRun_Logout(t *testing.T) {
	e := newEnv(t)
	e.signIn("Ann", "ann@x.io")

	_, errOut, err := e.run("", "logout")
	require.NoError(t, err)
	require.Contains(t, errOut, "Signed out")

	token, _ := e.store.Get(context.Background())
	require.Empty(t, token)
}

func TestRun_EventsFlow(t *testing.T) {
	e := newEnv(t)
	e.signIn("Ann", "ann@x.io")

	e.mustRun("", "create", "-title", "Jazz night", "-price", "30", "-date", "2024-05-03T20:00:00Z", "-lat", "42.88", "-lng", "74.60")
	e.mustRun("", "create", "-title", "Go meetup", "-description", "generics talk", "-price", "5", "-date", "2024-04-01")

	out := e.mustRun("", "events", "-sort", "price")
	require.Less(t, strings.Index(out, "Go meetup"), strings.Index(out, "Jazz night"))
	require.Contains(t, out, "host")
	require.Contains(t, out, " km")

	out = e.mustRun("", "events", "-q", "GENERICS")
	require.Contains(t, out, "Go meetup")
	require.NotContains(t, out, "Jazz night")

	require.Contains(t, e.mustRun("", "attend", "1"), `Joined "Jazz night", 1 attending`)
	out = e.mustRun("", "event", "1")
	require.Contains(t, out, "Attendees (1):")
	require.Contains(t, out, "Ann")
	require.Contains(t, e.mustRun("", "attend", "1"), `Left "Jazz night", 0 attending`)

	require.Contains(t, e.mustRun("", "delete", "1"), "Deleted event #1")
	require.NotContains(t, e.mustRun("", "events"), "Jazz night")

	_, _, err := e.run("", "events", "-sort", "name")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestRun_ProfileCommands(t *testing.T) {
	e := newEnv(t)
	e.signIn("Ann", "ann@x.io")

	e.mustRun("", "profile-update", "-name", "Ann B")
	out := e.mustRun("", "profile")
	require.Contains(t, out, "Ann B <ann@x.io>")
	require.Contains(t, out, "Location: 42.87000, 74.59000")

	_, errOut, err := e.run("a\nb\n", "password")
	require.ErrorIs(t, err, cli.ErrUsage)
	require.Contains(t, errOut, "do not match")

	require.Contains(t, e.mustRun("n3w\nn3w\n", "password"), "Password updated.")
	e.mustRun("", "logout")
	require.Contains(t, e.mustRun("n3w\n", "login", "-email", "ann@x.io"), "Logged in.")
}
