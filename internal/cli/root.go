// Package cli implements the relnotes command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/config"
	errs "github.com/gutterlabs/relnotes/internal/errors"
)

// Command group IDs for help output.
const (
	GroupCore        = "core"
	GroupMaintenance = "maintenance"
)

var configPathFlag string

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Lint and manage plain-text release-notes files",
	Long: `relnotes keeps a directory of per-version release-notes files healthy.

Each notes file follows a simple text format: a "<project> <version>" header,
a dashed separator, an optional announcement block, categorized bullet
sections (Feature, Enhancement, Fix, ...), and an optional trailing footer.
A messages.json index at the repository root maps versions to their files.

relnotes lints those files, keeps the index in sync, renders markdown
release notes, and scaffolds files for new versions.`,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupMaintenance, Title: "Maintenance Commands:"},
	)
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "",
		"Path to project config file (default: .relnotes.yml)")
}

// Execute runs the root command, printing structured errors to stderr.
// The returned error carries the process exit code via ExitError.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errs.AsCLIError(err); cliErr != nil {
		errs.FprintError(os.Stderr, cliErr)
	} else if !isExitError(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadConfig loads the layered configuration, honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return nil, errs.WrapWithMessage(err, errs.Configuration, "loading configuration",
			"Check the syntax of .relnotes.yml",
			"Run 'relnotes config init' to generate a commented template")
	}
	return cfg, nil
}
