package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/events-client/internal/domain"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	emailFlag := fs.String("email", "", "account email")
	lat := fs.String("lat", "", "your latitude, for event distances")
	lng := fs.String("lng", "", "your longitude")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	// An accepted credential means there is nothing to do; a rejected one
	// is cleared by Resume.
	if ok, err := a.session.Resume(ctx); err != nil {
		return err
	} else if ok {
		fmt.Fprintln(a.out, "Already logged in.")
		return nil
	}

	la, ln, err := coordinates(*lat, *lng)
	if err != nil {
		fmt.Fprintln(a.errOut, err)
		return ErrUsage
	}
	email, err := a.promptIfEmpty(*emailFlag, "Email")
	if err != nil {
		return err
	}
	password, err := a.password("Password")
	if err != nil {
		return err
	}

	token, err := a.session.Login(ctx, domain.Credentials{Email: email, Password: password, Lat: la, Lng: ln})
	if err != nil {
		return err
	}
	if err := a.session.Persist(ctx, token); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	name := fs.String("name", "", "display name")
	emailFlag := fs.String("email", "", "account email")
	avatarPath := fs.String("avatar", "", "image file to use as avatar")
	lat := fs.String("lat", "", "latitude")
	lng := fs.String("lng", "", "longitude")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	la, ln, err := coordinates(*lat, *lng)
	if err != nil {
		fmt.Fprintln(a.errOut, err)
		return ErrUsage
	}

	user := domain.User{}
	if la != nil {
		user.Lat, user.Lng = *la, *ln
	}
	if *avatarPath != "" {
		if user.Avatar, err = avatarDataURI(*avatarPath); err != nil {
			return err
		}
	}
	if user.Name, err = a.promptIfEmpty(*name, "Name"); err != nil {
		return err
	}
	if user.Email, err = a.promptIfEmpty(*emailFlag, "Email"); err != nil {
		return err
	}
	if user.Password, err = a.password("Password"); err != nil {
		return err
	}

	created, err := a.session.Register(ctx, user)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s (#%d). Run `eventsctl login` to sign in.\n", created.Email, created.ID)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	me, err := a.api.Users.Get(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> #%d\n", me.Name, me.Email, me.ID)

	exp, err := a.session.ExpiresAt(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Session expires %s\n", exp.Local().Format("2006-01-02 15:04"))
	case errors.Is(err, domain.ErrInvalidToken):
		// Opaque token, nothing to show.
	default:
		return err
	}
	return nil
}

// watch blocks until the session ends or ctx is cancelled.
func (a *App) watch(ctx context.Context, _ []string) error {
	if a.watcher == nil {
		return errors.New("watch: no session check schedule configured")
	}
	fmt.Fprintln(a.out, "Watching session, Ctrl+C to stop.")
	err := a.watcher.Start(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoCredential):
		return ErrNotLoggedIn
	default:
		return fmt.Errorf("watch: %w", err)
	}
}
