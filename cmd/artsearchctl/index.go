package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/artsearch/internal/app"
)

func newIndexCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the article index",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Drop and recreate the article index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if err := a.Index.Bootstrap(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "index %s ready\n", a.Index.Definition().Name)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "exists",
		Short: "Report whether the article index exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.Index.Ready(ctx))
				return nil
			})
		},
	})

	return cmd
}
