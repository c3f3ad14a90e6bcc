package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTargetsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List configured VPS targets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := app.targets.List(cmd.Context())
			if err != nil {
				return err
			}

			rendered, err := app.targetsRender(targets)
			if err != nil {
				return fmt.Errorf("render targets: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}
