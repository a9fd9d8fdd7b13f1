// Package commands wires the ledgerline CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/ledgerline/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var repoDir string

	rootCmd := &cobra.Command{
		Use:     "ledgerline",
		Short:   "Account rollups, cash flow classification and trial balances over a git-backed ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&repoDir, "repo", ".", "ledger repository directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newCheckCommand(&repoDir),
		newPostCommand(&repoDir),
		newReportCommand(&repoDir),
	)

	return rootCmd
}
