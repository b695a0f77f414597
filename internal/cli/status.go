package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/statuspage/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the public status page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.client.ListServices(cmd.Context())
			fmt.Fprint(a.out, ui.StatusPage(services, err))
			if err != nil {
				return reportedError{err}
			}
			return nil
		},
	}
}
