package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/statuspage/internal/client"
	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/ui"
)

func newServicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"svc"},
		Short:   "Manage services (admin)",
	}
	cmd.AddCommand(
		newServicesListCmd(a),
		newServicesGetCmd(a),
		newServicesCreateCmd(a),
		newServicesEditCmd(a),
		newServicesDeleteCmd(a),
	)
	return cmd
}

func newServicesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List services with their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listServices(cmd.Context())
		},
	}
}

func newServicesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.client.GetService(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, ui.ServiceDetail(svc))
			return nil
		},
	}
}

// serviceFlags are the optional field flags shared by create and edit.
type serviceFlags struct {
	name, description, status string
}

func (sf *serviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sf.name, "name", "", "service name")
	cmd.Flags().StringVar(&sf.description, "description", "", "service description")
	cmd.Flags().StringVar(&sf.status, "status", "", "one of: Operational, Degraded Performance, Partial Outage, Major Outage")
}

// apply copies the flags the user set onto f and reports whether any was set.
func (sf *serviceFlags) apply(cmd *cobra.Command, f *client.ServiceForm) (bool, error) {
	changed := false
	if cmd.Flags().Changed("name") {
		f.Name = sf.name
		changed = true
	}
	if cmd.Flags().Changed("description") {
		f.Description = sf.description
		changed = true
	}
	if cmd.Flags().Changed("status") {
		status, err := domain.ParseStatus(sf.status)
		if err != nil {
			return false, err
		}
		f.Status = status
		changed = true
	}
	return changed, nil
}

func newServicesCreateCmd(a *app) *cobra.Command {
	var sf serviceFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a service (prompts when --name is omitted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := client.NewServiceForm()
			if _, err := sf.apply(cmd, &form); err != nil {
				return err
			}
			return a.createService(cmd.Context(), form, form.Name == "")
		},
	}
	sf.register(cmd)
	return cmd
}

func newServicesEditCmd(a *app) *cobra.Command {
	var sf serviceFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a service (prompts when no field flag is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editService(cmd.Context(), args[0], func(f *client.ServiceForm) (bool, error) {
				return sf.apply(cmd, f)
			})
		},
	}
	sf.register(cmd)
	return cmd
}

func newServicesDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a service permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireAdmin(ctx, client.DefaultAdminRoute); err != nil {
				return err
			}

			if !yes {
				ok, err := a.prompter.Confirm("Are you sure you want to delete this service?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Aborted.")
					return nil
				}
			}

			msg, err := a.client.Admin().DeleteService(ctx, args[0])
			if err != nil {
				return err
			}
			ui.Success(a.out, msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) listServices(ctx context.Context) error {
	if err := a.requireAdmin(ctx, client.DefaultAdminRoute); err != nil {
		return err
	}
	services, err := a.client.Admin().ListServices(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, ui.ServiceTable(services))
	return nil
}

func (a *app) createService(ctx context.Context, form client.ServiceForm, prompt bool) error {
	if err := a.requireAdmin(ctx, client.DefaultAdminRoute+"/new"); err != nil {
		return err
	}
	if prompt {
		if err := a.prompter.ServiceForm(&form); err != nil {
			return err
		}
	}
	return a.submit(ctx, form, "Created")
}

// editService prefills the form from the server. overrides applies flag
// values; when it sets nothing the form is prompted for.
func (a *app) editService(ctx context.Context, id string, overrides func(*client.ServiceForm) (bool, error)) error {
	if err := a.requireAdmin(ctx, client.DefaultAdminRoute+"/"+id+"/edit"); err != nil {
		return err
	}

	svc, err := a.client.Admin().GetService(ctx, id)
	if err != nil {
		return err
	}
	form := client.FormFor(svc)

	changed := false
	if overrides != nil {
		if changed, err = overrides(&form); err != nil {
			return err
		}
	}
	if !changed {
		if err := a.prompter.ServiceForm(&form); err != nil {
			return err
		}
	}
	return a.submit(ctx, form, "Updated")
}

func (a *app) submit(ctx context.Context, form client.ServiceForm, verb string) error {
	svc, err := client.NewSubmitter(a.client.Admin()).Submit(ctx, form)
	if err != nil {
		return err
	}
	ui.Success(a.out, verb+" service "+svc.ID+".")
	fmt.Fprint(a.out, ui.ServiceDetail(svc))
	return nil
}
