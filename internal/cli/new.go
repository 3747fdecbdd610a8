package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/config"
	errs "github.com/gutterlabs/relnotes/internal/errors"
	"github.com/gutterlabs/relnotes/internal/gitutil"
	"github.com/gutterlabs/relnotes/internal/notes"
	"github.com/gutterlabs/relnotes/internal/output"
)

var newCmd = &cobra.Command{
	Use:   "new [version]",
	Short: "Scaffold a notes file for a new version",
	Long: `Create a new release-notes file in the messages directory.

Without a version argument, the next patch version is derived from the
highest git tag in the repository. The generated file is canonically
formatted and passes the linter; replace the placeholder bullets before
releasing.

Examples:
  relnotes new 1.6.0   # Create messages/1.6.0.txt
  relnotes new         # Derive the version from the latest git tag`,
	GroupID:      GroupMaintenance,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	version, err := resolveNewVersion(args)
	if err != nil {
		return err
	}

	project, err := resolveProject(cfg)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.MessagesDir, version+".txt")
	if _, err := os.Stat(path); err == nil {
		return errs.NewArgumentError(
			fmt.Sprintf("notes file %s already exists", path),
			"Edit the existing file instead, or pick a different version")
	}

	if err := os.MkdirAll(cfg.MessagesDir, 0755); err != nil {
		return fmt.Errorf("creating messages directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(notes.Scaffold(project, version)), 0644); err != nil {
		return fmt.Errorf("writing notes file: %w", err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("created %s", path))
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'relnotes index sync' after editing to update the index.")
	return nil
}

// resolveNewVersion validates the given version or derives the next patch
// version from the latest git tag.
func resolveNewVersion(args []string) (string, error) {
	if len(args) == 1 {
		version := notes.NormalizeVersion(args[0])
		if !notes.IsSemver(version) {
			return "", errs.NewArgumentErrorWithUsage(
				fmt.Sprintf("invalid version %q (expected: X.Y.Z)", args[0]),
				"relnotes new [version]")
		}
		return version, nil
	}

	if !gitutil.IsRepository(".") {
		return "", errs.NewArgumentError("no version given and not in a git repository",
			"Run 'relnotes new <version>'")
	}
	latest, err := gitutil.LatestTaggedVersion(".")
	if err != nil {
		return "", err
	}
	if latest == "" {
		return "", errs.NewArgumentError("no version given and the repository has no semver tags",
			"Run 'relnotes new <version>'")
	}
	return nextPatch(latest), nil
}

// resolveProject picks the header project name: the configured name, or the
// one used by the existing notes files.
func resolveProject(cfg *config.Configuration) (string, error) {
	if cfg.Project != "" {
		return cfg.Project, nil
	}
	if set, err := notes.LoadDir(cfg.MessagesDir); err == nil {
		if latest := set.Latest(); latest != nil {
			return latest.Project, nil
		}
	}
	return "", errs.NewConfigError("cannot determine the project name for the header",
		"Set 'project' in .relnotes.yml")
}

// nextPatch bumps the patch component, dropping any pre-release suffix.
func nextPatch(version string) string {
	base := version
	if i := strings.IndexAny(base, "-+"); i >= 0 {
		base = base[:i]
	}
	parts := strings.SplitN(base, ".", 3)
	patch, _ := strconv.Atoi(parts[2])
	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1)
}
