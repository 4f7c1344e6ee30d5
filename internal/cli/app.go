package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/httpapi"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"github.com/ErlanBelekov/events-client/internal/scheduler"
	"github.com/ErlanBelekov/events-client/internal/usecase"
	"github.com/robfig/cron/v3"
)

// ErrUsage means the command line was wrong; the message has been printed.
var ErrUsage = errors.New("usage error")

// ErrNotLoggedIn is returned by commands that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

type Deps struct {
	API    *httpapi.API
	Store  repository.CredentialStore
	Logger *slog.Logger

	// Schedule drives the watch command; nil disables it.
	Schedule cron.Schedule

	In  io.Reader
	Out io.Writer
	Err io.Writer
	// StdinFD is the terminal descriptor for password prompts, or -1 when
	// input is not a terminal.
	StdinFD int
}

type App struct {
	api     *httpapi.API
	session *usecase.SessionUsecase
	events  *usecase.EventCollection
	watcher *scheduler.SessionWatcher

	reader  *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	stdinFD int
}

type command struct {
	name   string
	usage  string
	public bool
	run    func(ctx context.Context, args []string) error
}

func NewApp(d Deps) *App {
	a := &App{
		api:     d.API,
		reader:  bufio.NewReader(d.In),
		out:     d.Out,
		errOut:  d.Err,
		stdinFD: d.StdinFD,
	}
	a.session = usecase.NewSessionUsecase(d.API.Auth, d.Store, a, d.Logger)
	a.events = usecase.NewEventCollection(d.API.Events, d.Logger)
	if d.Schedule != nil {
		a.watcher = scheduler.NewSessionWatcher(a.session, d.Schedule, d.Logger)
	}
	return a
}

// ToAnonymousEntry is called by the session on logout.
func (a *App) ToAnonymousEntry() {
	fmt.Fprintln(a.errOut, "Signed out. Run `eventsctl login` to sign in again.")
}

func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "login [-email addr] [-lat n -lng n]", public: true, run: a.login},
		{name: "register", usage: "register -name n -email addr [-avatar file] [-lat n -lng n]", public: true, run: a.register},
		{name: "logout", usage: "logout", public: true, run: a.logout},
		{name: "whoami", usage: "whoami", run: a.whoami},
		{name: "events", usage: "events [-sort price|date] [-q text]", run: a.listEvents},
		{name: "event", usage: "event <id>", run: a.showEvent},
		{name: "create", usage: "create -title t -price n -date d [-description s] [-address s] [-image url] [-lat n -lng n]", run: a.createEvent},
		{name: "delete", usage: "delete <id>", run: a.deleteEvent},
		{name: "attend", usage: "attend <id>", run: a.toggleAttendance},
		{name: "profile", usage: "profile [id]", run: a.profile},
		{name: "profile-update", usage: "profile-update -name n -email addr", run: a.updateProfile},
		{name: "avatar", usage: "avatar <file>", run: a.updateAvatar},
		{name: "password", usage: "password", run: a.updatePassword},
		{name: "watch", usage: "watch", run: a.watch},
	}
}

// Run executes one command. Every command except login, register and
// logout checks the session with the server first.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.help()
		return nil
	}

	for _, cmd := range a.commands() {
		if cmd.name != args[0] {
			continue
		}
		if !cmd.public {
			if err := a.requireSession(ctx); err != nil {
				return err
			}
		}
		return cmd.run(ctx, args[1:])
	}

	fmt.Fprintf(a.errOut, "unknown command %q\n", args[0])
	a.help()
	return ErrUsage
}

func (a *App) requireSession(ctx context.Context) error {
	err := a.session.CheckValidity(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoCredential), errors.Is(err, domain.ErrUnauthorized):
		fmt.Fprintln(a.errOut, "Not logged in. Run `eventsctl login` first.")
		return ErrNotLoggedIn
	default:
		return fmt.Errorf("check session: %w", err)
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Usage: eventsctl <command> [flags]")
	fmt.Fprintln(a.out)
	for _, cmd := range a.commands() {
		fmt.Fprintf(a.out, "  %s\n", cmd.usage)
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *App) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	return nil
}
