// Package cli provides the command-line interface for pylower.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pylower/internal/cli/commands"
	"github.com/leapstack-labs/pylower/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pylower",
		Short: "pylower - parse-tree to AST lowering",
		Long: `pylower rewrites grammar-engine parse trees into the canonical,
version-gated AST the reference front end expects.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
			if cfg.Verbose {
				if file := config.FileUsed(); file != "" {
					slog.Debug("using config file", "path", file)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default pylower.yaml)")
	flags.String("target-version", "", "target language version, e.g. 3.12")
	flags.Bool("spans", false, "include source spans in the AST dump")
	flags.BoolP("verbose", "v", false, "enable debug output")

	rootCmd.AddCommand(commands.NewLowerCommand(func() *config.Config { return cfg }))
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
