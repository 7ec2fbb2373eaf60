package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
)

func (a *App) signup(ctx context.Context) error {
	req := &api.SignupRequest{}
	var err error

	if req.Username, err = GetSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if req.Email, err = GetSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.FullName, err = GetSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if req.Password, err = GetPassword(a.out); err != nil {
		return err
	}

	avatarPath, err := GetSimpleText(a.reader, "Avatar file (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if avatarPath != "" {
		if req.Avatar, err = ReadAvatar(avatarPath); err != nil {
			return err
		}
	}

	user, err := a.accounts.Signup(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signup successful")
	a.printUser(user)
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful")
	a.printUser(resp.User)
	fmt.Fprintf(a.out, "Access token: %s\n", resp.AccessToken)
	return nil
}

func (a *App) me(ctx context.Context) error {
	user, err := a.accounts.Me(ctx)
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

// update prompts for each mutable field; an empty answer keeps the value.
func (a *App) update(ctx context.Context) error {
	req := &api.UpdateUserRequest{}

	email, err := GetSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if email != "" {
		req.Email = &email
	}

	fullName, err := GetSimpleText(a.reader, "New full name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if fullName != "" {
		req.FullName = &fullName
	}

	user, err := a.accounts.UpdateUser(ctx, req)
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

func (a *App) avatar(ctx context.Context, path string) error {
	dataURI, err := ReadAvatar(path)
	if err != nil {
		return err
	}
	user, err := a.accounts.UpdateAvatar(ctx, dataURI)
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

func (a *App) users(ctx context.Context) error {
	users, err := a.accounts.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return tw.Flush()
}

func (a *App) delete(ctx context.Context, id string) error {
	if err := a.accounts.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s deleted\n", id)
	return nil
}

func (a *App) printUser(u *api.User) {
	if u == nil {
		return
	}
	fmt.Fprintf(a.out, "ID:        %s\n", u.ID)
	fmt.Fprintf(a.out, "Username:  %s\n", u.Username)
	fmt.Fprintf(a.out, "Email:     %s\n", u.Email)
	fmt.Fprintf(a.out, "Full name: %s\n", u.FullName)
	fmt.Fprintf(a.out, "Role:      %s\n", u.Role)
	if u.Avatar != "" {
		fmt.Fprintf(a.out, "Avatar:    %s\n", u.Avatar)
	}
}
