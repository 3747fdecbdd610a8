package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gutterlabs/relnotes/internal/config"
	errs "github.com/gutterlabs/relnotes/internal/errors"
	"github.com/gutterlabs/relnotes/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the user
config, the project config, and RELNOTES_* environment variables.`,
	GroupID:      GroupMaintenance,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config template",
	Long: `Write a fully commented .relnotes.yml template to the current
directory. Refuses to overwrite an existing config file.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "project:         %q\n", cfg.Project)
	fmt.Fprintf(out, "messages_dir:    %s\n", cfg.MessagesDir)
	fmt.Fprintf(out, "index_file:      %s\n", cfg.IndexFile)
	fmt.Fprintf(out, "sections:        %v\n", cfg.Sections)
	fmt.Fprintf(out, "max_line_length: %d\n", cfg.MaxLineLength)
	fmt.Fprintf(out, "remote_url:      %q\n", cfg.RemoteURL)

	if len(cfg.Rules) == 0 {
		fmt.Fprintf(out, "rules:           (defaults)\n")
		return nil
	}
	rules := make([]string, 0, len(cfg.Rules))
	for rule := range cfg.Rules {
		rules = append(rules, rule)
	}
	sort.Strings(rules)
	fmt.Fprintf(out, "rules:\n")
	for _, rule := range rules {
		fmt.Fprintf(out, "  %s: %s\n", rule, cfg.Rules[rule])
	}
	return nil
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil {
		return errs.NewArgumentError(fmt.Sprintf("%s already exists", path),
			"Remove it first if you want a fresh template")
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), "created "+path)
	return nil
}
