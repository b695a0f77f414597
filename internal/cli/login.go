package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/statuspage/internal/client"
	"github.com/MrSnakeDoc/statuspage/internal/ui"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password, next string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the administrator",
		Long: `Log in as the administrator. Missing credentials are prompted for.
With --next the command continues to that admin screen afterwards, e.g.
--next /admin/services/new.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.login(cmd.Context(), username, password); err != nil {
				return err
			}
			if next == "" {
				return nil
			}
			return a.resume(cmd, next)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	cmd.Flags().StringVar(&next, "next", "", "admin screen to open after login")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			ui.Success(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		creds := Credentials{Username: username, Password: password}
		if err := a.prompter.Login(&creds); err != nil {
			return err
		}
		username, password = creds.Username, creds.Password
	}

	if err := a.client.Login(ctx, username, password); err != nil {
		fmt.Fprint(a.errOut, ui.FormatError("login failed", err.Error(), ""))
		return reportedError{err}
	}
	ui.Success(a.out, "Logged in as "+username+".")
	return nil
}

// requireAdmin runs the route guard for destination. A denied check sends
// the user through the login form, then returns so the caller continues.
func (a *app) requireAdmin(ctx context.Context, destination string) error {
	stored, err := a.client.Tokens().Token()
	if err != nil {
		return err
	}
	d, err := client.NewGuard(a.client.Tokens()).Check(destination)
	if err != nil {
		return err
	}
	if d.Allowed {
		return nil
	}

	if stored != "" {
		ui.Warn(a.errOut, "admin session expired.")
	}
	fmt.Fprintln(a.errOut, ui.Hint("Please log in to open "+d.Next+"."))
	return a.login(ctx, "", "")
}

// resume opens an admin screen by route.
func (a *app) resume(cmd *cobra.Command, destination string) error {
	ctx := cmd.Context()
	path := strings.TrimRight(destination, "/")

	switch {
	case path == client.DefaultAdminRoute:
		return a.listServices(ctx)
	case path == client.DefaultAdminRoute+"/new":
		return a.createService(ctx, client.NewServiceForm(), true)
	case strings.HasPrefix(path, client.DefaultAdminRoute+"/") && strings.HasSuffix(path, "/edit"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, client.DefaultAdminRoute+"/"), "/edit")
		return a.editService(ctx, id, nil)
	default:
		return fmt.Errorf("unknown admin screen %q", destination)
	}
}
