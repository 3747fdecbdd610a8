package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/config"
	errs "github.com/gutterlabs/relnotes/internal/errors"
	"github.com/gutterlabs/relnotes/internal/gitutil"
	"github.com/gutterlabs/relnotes/internal/notes"
	"github.com/gutterlabs/relnotes/internal/output"
	"github.com/gutterlabs/relnotes/internal/watch"
)

var (
	lintFormatFlag  string
	lintWatchFlag   bool
	lintMaxLineFlag int
	lintTagsFlag    bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Lint release-notes files",
	Long: `Lint release-notes files for format and style problems.

Without arguments, lints every versioned file in the configured messages
directory. Paths may name individual files or directories.

Exit code 1 when any error-severity finding exists, 0 otherwise.

Examples:
  relnotes lint                        # Lint the messages directory
  relnotes lint messages/1.5.0.txt     # Lint a single file
  relnotes lint --watch                # Re-lint on every change
  relnotes lint --tags                 # Also require a git tag per version
  relnotes lint --format json          # Machine-readable output`,
	GroupID:      GroupCore,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintFormatFlag, "format", "text", "Output format: text or json")
	lintCmd.Flags().BoolVar(&lintWatchFlag, "watch", false, "Re-lint whenever a notes file changes")
	lintCmd.Flags().IntVar(&lintMaxLineFlag, "max-line-length", 0, "Override the configured max line length")
	lintCmd.Flags().BoolVar(&lintTagsFlag, "tags", false, "Check that each released version has a git tag")
}

func runLint(cmd *cobra.Command, args []string) error {
	if lintFormatFlag != "text" && lintFormatFlag != "json" {
		return errs.NewArgumentErrorWithUsage(
			fmt.Sprintf("invalid --format %q", lintFormatFlag),
			"relnotes lint [path...] --format <text|json>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lintCfg, err := cfg.LintConfig()
	if err != nil {
		return errs.WrapWithMessage(err, errs.Configuration, "invalid lint rules",
			"Check the 'rules' section of .relnotes.yml")
	}
	if cmd.Flags().Changed("max-line-length") {
		lintCfg.MaxLineLength = lintMaxLineFlag
	}
	linter := notes.NewLinter(lintCfg)

	if lintWatchFlag {
		return watchLint(cmd, cfg, linter, args)
	}
	return lintOnce(cmd, cfg, linter, args)
}

// lintOnce runs a single lint pass and reports the results.
func lintOnce(cmd *cobra.Command, cfg *config.Configuration, linter *notes.Linter, args []string) error {
	findings, err := collectFindings(cmd.Context(), cfg, linter, args)
	if err != nil {
		return err
	}

	if err := reportFindings(cmd, findings); err != nil {
		return err
	}
	if notes.HasErrors(findings) {
		return NewExitError(ExitLintFailed)
	}
	return nil
}

// watchLint lints once, then re-lints on every notes file change until
// interrupted.
func watchLint(cmd *cobra.Command, cfg *config.Configuration, linter *notes.Linter, args []string) error {
	if len(args) > 0 {
		return errs.NewArgumentError("--watch cannot be combined with explicit paths",
			"Run 'relnotes lint --watch' to watch the configured messages directory")
	}
	if _, err := os.Stat(cfg.MessagesDir); err != nil {
		return missingMessagesDir(cfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runPass := func() {
		findings, err := collectFindings(ctx, cfg, linter, nil)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "lint failed: %v\n", err)
			return
		}
		// Findings are expected in watch mode; keep looping either way.
		_ = reportFindings(cmd, findings)
	}

	runPass()
	fmt.Fprintln(cmd.OutOrStdout())
	output.PrintWatchEvent(cmd.OutOrStdout(), fmt.Sprintf("watching %s (Ctrl+C to exit)", cfg.MessagesDir))

	w := watch.New(cfg.MessagesDir)
	err := w.Run(ctx, func(event string) error {
		output.PrintWatchEvent(cmd.OutOrStdout(), "changed: "+filepath.Base(event))
		runPass()
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// collectFindings lints the requested paths (or the messages directory) and
// optionally appends git tag findings.
func collectFindings(ctx context.Context, cfg *config.Configuration, linter *notes.Linter, args []string) ([]notes.Finding, error) {
	var findings []notes.Finding

	if len(args) == 0 {
		if _, err := os.Stat(cfg.MessagesDir); err != nil {
			return nil, missingMessagesDir(cfg)
		}
		fs, err := linter.LintDir(ctx, cfg.MessagesDir)
		if err != nil {
			return nil, err
		}
		findings = fs
	} else {
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, errs.NewPrerequisiteError(
					fmt.Sprintf("cannot lint %s: %v", arg, err))
			}
			var fs []notes.Finding
			if info.IsDir() {
				fs, err = linter.LintDir(ctx, arg)
			} else {
				fs, err = linter.LintFile(arg)
			}
			if err != nil {
				return nil, err
			}
			findings = append(findings, fs...)
		}
	}

	if lintTagsFlag {
		tagFindings, err := checkTags(cfg, linter)
		if err != nil {
			return nil, err
		}
		findings = append(findings, tagFindings...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Line < findings[j].Line
	})
	return findings, nil
}

// checkTags reports versions in the messages directory without a matching
// git tag (either "v1.5.0" or "1.5.0" style).
func checkTags(cfg *config.Configuration, linter *notes.Linter) ([]notes.Finding, error) {
	sev := linter.RuleSeverity("missing-tag")
	if sev == notes.SeverityOff {
		return nil, nil
	}

	if !gitutil.IsRepository(".") {
		return nil, errs.NewPrerequisiteError("--tags requires a git repository",
			"Run relnotes from inside the repository, or drop --tags")
	}

	tagged, err := gitutil.TaggedVersions(".")
	if err != nil {
		return nil, err
	}

	set, err := notes.LoadDir(cfg.MessagesDir)
	if err != nil {
		return nil, err
	}

	var findings []notes.Finding
	for _, doc := range set.Documents {
		if !tagged[doc.Version] {
			findings = append(findings, notes.Finding{
				Path:     doc.Path,
				Line:     1,
				Rule:     "missing-tag",
				Severity: sev,
				Message:  fmt.Sprintf("version %s has no matching git tag", doc.Version),
			})
		}
	}
	return findings, nil
}

// reportFindings writes findings in the selected format plus a summary line.
func reportFindings(cmd *cobra.Command, findings []notes.Finding) error {
	out := cmd.OutOrStdout()

	if lintFormatFlag == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		payload := make([]jsonFinding, len(findings))
		for i, f := range findings {
			payload[i] = jsonFinding{
				Path: f.Path, Line: f.Line, Rule: f.Rule,
				Severity: f.Severity.String(), Message: f.Message,
			}
		}
		return enc.Encode(payload)
	}

	errors, warnings := 0, 0
	for _, f := range findings {
		fmt.Fprintln(out, f.String())
		if f.Severity == notes.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	if len(findings) == 0 {
		output.PrintSuccess(out, "no problems found")
	} else {
		output.PrintFailure(out, fmt.Sprintf("%d problems (%d errors, %d warnings)",
			len(findings), errors, warnings))
	}
	return nil
}

// jsonFinding is the stable JSON shape for --format json.
type jsonFinding struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func missingMessagesDir(cfg *config.Configuration) error {
	return errs.NewPrerequisiteError(
		fmt.Sprintf("messages directory %q does not exist", cfg.MessagesDir),
		"Create it with 'relnotes new <version>'",
		"Or set messages_dir in .relnotes.yml")
}
