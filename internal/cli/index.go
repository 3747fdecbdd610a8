package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/index"
	"github.com/gutterlabs/relnotes/internal/output"
)

var indexCmd = &cobra.Command{
	Use:     "index",
	Short:   "Manage the messages.json index",
	Long:    `Commands for checking and regenerating the messages.json index that maps versions to their notes files.`,
	GroupID: GroupMaintenance,
}

var indexCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate messages.json against the messages directory",
	Long: `Validate that messages.json is consistent with the messages directory.

Checks that every listed file exists, every versioned notes file is listed,
and the index matches the canonical rendering. Returns exit code 0 if in
sync, or exit code 1 with a useful message if out of sync.

Example:
  relnotes index check`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndexCheck(cmd)
	},
}

var indexSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerate messages.json from the messages directory",
	Long: `Regenerate messages.json from the messages directory.

The generated file is deterministic - the install entry first, then versions
in ascending order - so running sync repeatedly produces identical output as
long as the directory hasn't changed.

Example:
  relnotes index sync`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndexSync(cmd)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexCheckCmd)
	indexCmd.AddCommand(indexSyncCmd)
}

func runIndexCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if idx, err := index.Load(cfg.IndexFile); err == nil {
		if err := index.Validate(idx, ".", cfg.MessagesDir); err != nil {
			output.PrintFailure(cmd.OutOrStdout(), fmt.Sprintf("%s is invalid: %v", cfg.IndexFile, err))
			return NewExitError(ExitLintFailed)
		}
	}

	inSync, _, err := index.Check(".", cfg.MessagesDir, cfg.IndexFile)
	if err != nil {
		return err
	}
	if !inSync {
		output.PrintFailure(cmd.OutOrStdout(),
			fmt.Sprintf("%s is out of sync with %s/", cfg.IndexFile, cfg.MessagesDir))
		fmt.Fprintf(cmd.OutOrStdout(), "\nTo fix, run:\n  relnotes index sync\n")
		return NewExitError(ExitLintFailed)
	}

	output.PrintSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("%s is in sync with %s/", cfg.IndexFile, cfg.MessagesDir))
	return nil
}

func runIndexSync(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idx, err := index.Generate(".", cfg.MessagesDir)
	if err != nil {
		return err
	}
	if err := index.Write(idx, cfg.IndexFile); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("synced %s/ → %s (%d entries)", cfg.MessagesDir, cfg.IndexFile, len(idx)))
	return nil
}
