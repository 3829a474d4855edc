package commands

import (
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pylower/internal/cli/config"
	"github.com/leapstack-labs/pylower/internal/treeio"
	"github.com/leapstack-labs/pylower/pkg/ast"
	"github.com/leapstack-labs/pylower/pkg/lower"
	"github.com/leapstack-labs/pylower/pkg/version"
)

// NewLowerCommand creates the lower command: decode a parse-tree document,
// lower it against the configured target version, and print the AST dump.
func NewLowerCommand(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lower <tree-file>",
		Short: "Lower a parse-tree document to an AST",
		Long: `Read a parse-tree document (YAML or JSON) produced by the grammar
engine, lower it to the reference AST for the configured target version,
and print the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			target, err := version.Parse(cfg.TargetVersion)
			if err != nil {
				return err
			}
			root, err := treeio.DecodeFile(args[0])
			if err != nil {
				return err
			}
			if cfg.Verbose {
				slog.Debug("decoded parse tree", "file", args[0], "root", root.Kind())
				spew.Fdump(cmd.ErrOrStderr(), root)
			}
			mod, err := lower.Module(root, target)
			if err != nil {
				return err
			}
			dump := ast.Dump
			if cfg.Spans {
				dump = ast.DumpWithSpans
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), dump(mod))
			return nil
		},
	}
}
