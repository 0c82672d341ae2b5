package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/artsearch/internal/app"
)

func newSeedCmd(c *cli) *cobra.Command {
	var (
		authors  int
		articles int
		ensure   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with generated authors and articles",
		Long: `Seed writes generated authors and articles when the store holds no articles yet.
The article index must exist first; pass --ensure-index to rebuild it before seeding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if authors > 0 {
				c.cfg.Seed.Authors = authors
			}
			if articles > 0 {
				c.cfg.Seed.Articles = articles
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if ensure {
					if err := a.Index.Bootstrap(ctx); err != nil {
						return err
					}
				}
				rep, err := a.Seeder.Seed(ctx)
				if err != nil {
					return err
				}
				if rep.Skipped {
					fmt.Fprintf(cmd.OutOrStdout(), "skipped: %d articles already stored\n", rep.Existing)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d authors, %d articles\n", rep.Authors, rep.Articles)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&authors, "authors", 0, "number of authors (default from config)")
	cmd.Flags().IntVar(&articles, "articles", 0, "number of articles (default from config)")
	cmd.Flags().BoolVar(&ensure, "ensure-index", false, "rebuild the index before seeding")
	return cmd
}
