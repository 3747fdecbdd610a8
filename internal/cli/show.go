package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/config"
	errs "github.com/gutterlabs/relnotes/internal/errors"
	"github.com/gutterlabs/relnotes/internal/notes"
	"github.com/gutterlabs/relnotes/internal/output"
)

var (
	showLastFlag   int
	showPlainFlag  bool
	showRemoteFlag bool
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View release-notes entries in the terminal",
	Long: `View release-notes entries with color-coded sections.

By default, shows the 5 most recent entries across versions. Use a version
argument to see the full notes for that version, or --last to control the
entry count.

Examples:
  relnotes show                # Show 5 most recent entries
  relnotes show v1.5.0         # Show all notes for version 1.5.0
  relnotes show 1.5.0          # Same (v prefix optional)
  relnotes show --last 10      # Show 10 most recent entries
  relnotes show --plain        # Plain output (no colors/icons)
  relnotes show 1.5.0 --remote # Fetch the published copy first`,
	GroupID:      GroupCore,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 5, "Number of entries to show")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().BoolVar(&showRemoteFlag, "remote", false, "Fetch the published notes file before displaying")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	set, err := notes.LoadDir(cfg.MessagesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return missingMessagesDir(cfg)
		}
		return fmt.Errorf("loading notes: %w", err)
	}

	opts := notes.FormatOptions{Plain: showPlainFlag, MaxWidth: output.GetTerminalWidth()}

	if len(args) == 1 {
		return showVersion(cmd, cfg, set, args[0], opts)
	}

	if showRemoteFlag {
		return errs.NewArgumentErrorWithUsage("--remote requires a version argument",
			"relnotes show <version> --remote")
	}
	return showLastEntries(cmd, set, showLastFlag, opts)
}

// showVersion displays the full notes for one version, optionally preferring
// the published remote copy.
func showVersion(cmd *cobra.Command, cfg *config.Configuration, set *notes.Set, version string, opts notes.FormatOptions) error {
	doc, err := set.Get(version)
	if err != nil {
		var notFound *notes.VersionNotFoundError
		if errors.As(err, &notFound) && !showRemoteFlag {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range set.Versions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		if !showRemoteFlag {
			return fmt.Errorf("getting version: %w", err)
		}
		doc = nil
	}

	if showRemoteFlag {
		remote, fromRemote, err := fetchRemote(cmd, cfg, version, doc)
		if err != nil {
			return err
		}
		if !fromRemote {
			fmt.Fprintln(cmd.ErrOrStderr(), "remote fetch failed, showing local copy")
		}
		doc = remote
	}

	return notes.FormatDocument(doc, cmd.OutOrStdout(), opts)
}

// fetchRemote downloads the published notes file for a version, showing a
// spinner while the request is in flight.
func fetchRemote(cmd *cobra.Command, cfg *config.Configuration, version string, local *notes.Document) (*notes.Document, bool, error) {
	if cfg.RemoteURL == "" {
		return nil, false, errs.NewConfigError("remote_url is not configured",
			"Set remote_url in .relnotes.yml to the raw base URL of the published messages directory")
	}

	url := fmt.Sprintf("%s/%s.txt", cfg.RemoteURL, notes.NormalizeVersion(version))

	var sp *spinner.Spinner
	if !showPlainFlag {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(cmd.ErrOrStderr()))
		sp.Suffix = " fetching " + url
		sp.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), notes.DefaultRemoteTimeout)
	defer cancel()
	doc, fromRemote, err := notes.FetchRemoteWithFallback(ctx, url, local)

	if sp != nil {
		sp.Stop()
	}
	return doc, fromRemote, err
}

// showLastEntries displays the N most recent entries across versions.
func showLastEntries(cmd *cobra.Command, set *notes.Set, n int, opts notes.FormatOptions) error {
	entries := set.LastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No release-notes entries found.")
		return nil
	}

	if err := notes.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := set.EntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}
