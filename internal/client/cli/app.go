// Package cli implements the gophaccounts-cli commands on top of the gRPC
// client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/api"
)

// Accounts is the subset of client.GRPCClient used by the commands.
type Accounts interface {
	Signup(ctx context.Context, req *api.SignupRequest) (*api.User, error)
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Me(ctx context.Context) (*api.User, error)
	UpdateUser(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error)
	UpdateAvatar(ctx context.Context, dataURI string) (*api.User, error)
	ListUsers(ctx context.Context) ([]*api.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

var ErrUsage = errors.New("usage: gophaccounts-cli [-a addr] [-t token] <signup|login|me|update|avatar <file>|users|delete <id>>")

type App struct {
	accounts Accounts
	reader   *bufio.Reader
	out      io.Writer
	timeout  time.Duration
}

func NewApp(accounts Accounts, in io.Reader, out io.Writer, timeout time.Duration) *App {
	return &App{accounts: accounts, reader: bufio.NewReader(in), out: out, timeout: timeout}
}

// Run executes one command. args[0] is the command name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "signup":
		return a.signup(ctx)
	case "login":
		return a.login(ctx)
	case "me":
		return a.me(ctx)
	case "update":
		return a.update(ctx)
	case "avatar":
		if len(rest) != 1 {
			return fmt.Errorf("usage: avatar <file>")
		}
		return a.avatar(ctx, rest[0])
	case "users":
		return a.users(ctx)
	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		return a.delete(ctx, rest[0])
	case "help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}
}
