package main

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appkg "github.com/xenking/shopdesk/internal/app"
)

// cli holds state shared by every command. The application is opened on
// first use so that help and flag errors never touch the store.
type cli struct {
	lg *zap.Logger
	m  appkg.Telemetry

	configFile string
	dbPath     string
	dbURL      string

	app *appkg.App
}

// execute runs the command line. A nil args uses os.Args.
func execute(ctx context.Context, lg *zap.Logger, m appkg.Telemetry, args []string) error {
	c := &cli{lg: lg, m: m}
	root := c.rootCmd()
	if args != nil {
		root.SetArgs(args)
	}
	defer c.close()
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shopdesk",
		Short:         "Keep track of clients, products and orders.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "YAML config file (default shopdesk.yaml)")
	flags.StringVar(&c.dbPath, "db", "", "SQLite database file")
	flags.StringVar(&c.dbURL, "database-url", "", "PostgreSQL connection URL; overrides --db")

	root.AddCommand(
		c.clientCmd(),
		c.productCmd(),
		c.orderCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.reportCmd(),
		c.serveCmd(),
	)
	return root
}

func (c *cli) config() (*appkg.Config, error) {
	var files []string
	if c.configFile != "" {
		if _, err := os.Stat(c.configFile); err != nil {
			return nil, errors.Wrap(err, "config file")
		}
		files = []string{c.configFile}
	}
	cfg, err := appkg.LoadConfig(files...)
	if err != nil {
		return nil, err
	}
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	if c.dbURL != "" {
		cfg.Database.URL = c.dbURL
	}
	return cfg, nil
}

// open returns the application, opening it on the first call.
func (c *cli) open(ctx context.Context) (*appkg.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	a, err := appkg.New(ctx, c.lg, c.m, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open application")
	}
	c.app = a
	return a, nil
}

func (c *cli) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		c.lg.Warn("Close store", zap.Error(err))
	}
	c.app = nil
}
