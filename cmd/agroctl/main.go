// Command agroctl runs the advisory handlers in-process against an
// ephemeral memory session and prints their output as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"agro-advisor/internal/app"
	"agro-advisor/internal/common/config"
	"agro-advisor/internal/common/logger"
)

type cli struct {
	configPath string
	noDelay    bool
	logLevel   string
	seed       int64

	loadConfig func(path string) (*config.Config, error)
	app        *app.App
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(loadConfig)
}

func newRootCmdWith(load func(path string) (*config.Config, error)) *cobra.Command {
	c := &cli{loadConfig: load}

	root := &cobra.Command{
		Use:           "agroctl",
		Short:         "Query the agro advisory handlers from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a config file (default: configs/config.yaml)")
	flags.BoolVar(&c.noDelay, "no-delay", false, "skip the simulated response latency")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")
	flags.Int64Var(&c.seed, "seed", 0, "random seed for simulations and climate data (0 keeps the configured seed)")

	root.AddCommand(
		c.chatCmd(),
		c.simulateCmd(),
		c.optionsCmd(),
		c.productsCmd(),
		c.locationCmd(),
		c.dashboardCmd(),
		c.tasksCmd(),
	)
	return root
}

// setup loads config and builds the handlers. The CLI always keeps its
// session in memory.
func (c *cli) setup(ctx context.Context) error {
	cfg, err := c.loadConfig(c.configPath)
	if err != nil {
		return err
	}

	cfg.Session.Backend = config.SessionBackendMemory
	cfg.Camunda.Enabled = false
	cfg.Telegram.Enabled = false
	if c.noDelay {
		cfg.Mock.ChatDelay = 0
		cfg.Mock.SimulationDelay = 0
		cfg.Mock.LocationDelay = 0
	}
	if c.seed != 0 {
		cfg.Mock.Seed = c.seed
	}

	log := logger.NewStructured(c.logLevel, "console", "stderr")
	a, err := app.New(ctx, cfg, nil, log)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
