package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) profile(ctx context.Context, args []string) error {
	var id int64
	if len(args) > 0 {
		var err error
		if id, err = parseID(args); err != nil {
			return err
		}
	}
	u, err := a.api.Users.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.Name, u.Email)
	if u.Lat != 0 || u.Lng != 0 {
		fmt.Fprintf(a.out, "Location: %s, %s\n",
			strconv.FormatFloat(u.Lat, 'f', 5, 64), strconv.FormatFloat(u.Lng, 'f', 5, 64))
	}
	if u.Avatar != "" {
		fmt.Fprintf(a.out, "Avatar: %s\n", truncate(u.Avatar, 60))
	}
	return nil
}

func (a *App) updateProfile(ctx context.Context, args []string) error {
	fs := a.newFlagSet("profile-update")
	name := fs.String("name", "", "new display name")
	email := fs.String("email", "", "new email")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	// Both fields are always sent, so fill the missing one from the profile.
	if *name == "" || *email == "" {
		me, err := a.api.Users.Get(ctx, 0)
		if err != nil {
			return err
		}
		if *name == "" {
			*name = me.Name
		}
		if *email == "" {
			*email = me.Email
		}
	}

	if err := a.api.Users.UpdateProfile(ctx, *name, *email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

func (a *App) updateAvatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	uri, err := avatarDataURI(args[0])
	if err != nil {
		return err
	}
	stored, err := a.api.Users.UpdateAvatar(ctx, uri)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Avatar updated: %s\n", truncate(stored, 60))
	return nil
}

func (a *App) updatePassword(ctx context.Context, _ []string) error {
	pw, err := a.password("New password")
	if err != nil {
		return err
	}
	again, err := a.password("Repeat new password")
	if err != nil {
		return err
	}
	if pw != again {
		fmt.Fprintln(a.errOut, "Passwords do not match.")
		return ErrUsage
	}
	if err := a.api.Users.UpdatePassword(ctx, pw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated.")
	return nil
}
