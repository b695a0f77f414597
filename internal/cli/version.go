package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/statuspage/internal/version"
)

func newVersionCmd(a *app) *cobra.Command {
	var checkServer bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the statusctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "statusctl "+version.String())
			if !checkServer {
				return nil
			}
			if err := a.client.Health(cmd.Context()); err != nil {
				return fmt.Errorf("server health check failed: %w", err)
			}
			fmt.Fprintln(a.out, "server: ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkServer, "check", false, "also check that the server answers")
	return cmd
}
