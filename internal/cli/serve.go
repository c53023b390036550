package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/archivist/internal/entrypoint"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, background export workers and scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(app *entrypoint.App) error {
				if err := app.Console.Rule(fmt.Sprintf("Run %d", app.Run)); err != nil {
					return err
				}
				return entrypoint.Run(app, opts.version)
			})
		},
	}
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "archivist", opts.version)
		},
	}
}
