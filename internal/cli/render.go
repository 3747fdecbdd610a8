package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/notes"
)

var renderCmd = &cobra.Command{
	Use:   "render <version>",
	Short: "Render release notes for a version as markdown",
	Long: `Render the notes for a specific version as markdown.

The output is suitable for GitHub release notes and is written to stdout,
so it composes with CI pipelines that create releases:

  relnotes render v1.5.0 | gh release create v1.5.0 --notes-file -

Examples:
  relnotes render v1.5.0   # Render notes for version 1.5.0
  relnotes render 1.5.0    # Same (v prefix optional)`,
	GroupID:      GroupCore,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, version string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	set, err := notes.LoadDir(cfg.MessagesDir)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	doc, err := set.Get(version)
	if err != nil {
		var notFound *notes.VersionNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range set.Versions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	return notes.RenderMarkdown(doc, cmd.OutOrStdout())
}
