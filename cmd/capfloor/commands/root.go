package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/capfloor/capfloor"
	"github.com/meenmo/capfloor/config"
	"github.com/meenmo/capfloor/logger"
)

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns the capfloor command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		configFile string
		envFile    string
		logLevel   string
	)
	log := zerolog.Nop()

	root := &cobra.Command{
		Use:   "capfloor",
		Short: "Interest rate cap/floor valuation",
		Long: `Values interest rate caps and floors as strips of caplets/floorlets
under Black, shifted Black or SABR volatility.

Examples:
  capfloor value -i trade.yaml
  capfloor value -i a.yaml -i b.json --leg
  capfloor --log-level debug value < trade.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Variables already set in the environment win over the file.
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("loading %s: %w", envFile, err)
				}
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			config.SetConfig(cfg)

			log = logger.New(cfg, cmd.ErrOrStderr())
			capfloor.SetLogger(log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML, optional)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with CAPFLOOR_* variables (skipped if missing)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error|disabled)")

	root.AddCommand(newValueCmd(&log))
	root.AddCommand(newVersionCmd())
	return root
}
