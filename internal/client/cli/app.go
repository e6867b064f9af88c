package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rollcall/internal/client/client"
	"github.com/dmitrijs2005/rollcall/internal/client/config"
)

type App struct {
	config   *config.Config
	client   client.Client
	reader   *bufio.Reader
	out      io.Writer
	userName string
	role     string
}

func NewApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.userName, a.role)
}

func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.Timeout)
}

// Login opens a session as the configured user.
func (a *App) Login(ctx context.Context) error {
	password := a.config.Password
	if password == "" {
		var err error
		password, err = GetPassword(fmt.Sprintf("Password for %s", a.config.Username), a.out)
		if err != nil {
			return err
		}
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.client.Login(ctx, a.config.Username, password)
	if err != nil {
		return err
	}
	a.userName = resp.Username
	a.role = resp.Role
	return nil
}

// Logout ends the session, if any.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	a.userName, a.role = "", ""
	return a.client.Logout(ctx)
}
