package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/artsearch/internal/app"
	"github.com/kailas-cloud/artsearch/internal/config"
	logpkg "github.com/kailas-cloud/artsearch/internal/logger"
	"github.com/kailas-cloud/artsearch/internal/version"
)

// cli carries state shared by all subcommands.
type cli struct {
	env        string
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "artsearchctl",
		Short:         "Operate the artsearch article index",
		Long:          `artsearchctl rebuilds the article index, seeds sample data and runs searches against the configured store.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.load()
		},
	}

	root.PersistentFlags().StringVar(&c.env, "env", config.GetEnv(), "environment whose config/<env>.yaml is loaded")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "explicit config file (overrides --env)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newIndexCmd(c),
		newSeedCmd(c),
		newSearchCmd(c),
	)
	return root
}

func (c *cli) load() error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load(c.env)
	}
	if err != nil {
		return err
	}

	env := c.env
	if env != "prod" {
		env = "local"
	}
	c.logger, err = logpkg.NewLogger(env, c.logLevel)
	return err
}

// withApp opens the store, wires the use cases and closes the store after fn.
func (c *cli) withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	store, err := app.OpenStore(ctx, c.cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return fn(ctx, app.New(c.cfg, store, c.logger))
}
