package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
scriptindex keeps a "# Scripts" table in your README in sync with the docstrings
of the scripts in your repository.

Every candidate file under the root (Python sources by default) is read, the
leading triple-quoted docstring is scanned for "<Field>: <value>" lines, and the
matching values become one table row per file, sorted by path. The table is
written between a "# Scripts" line and a "::" line; everything else in the README
is left alone. Running it again without changes leaves the file untouched.

Exit codes:

  0  nothing to modify
  1  README modified
  2  no source files found
  3  README missing, unreadable or not named like a README
  4  README could not be written
  5  link fields are not a subset of the table fields
  64 invalid flags or configuration
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "scriptindex [flags] [root]",
		Short:         "Maintain a README table of script docstrings",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVar(&app.opts.configPath, "config", "", "YAML config file (default .scriptindex.yaml when present)")
	flags.StringVarP(&app.opts.root, "root", "r", ".", "directory searched for scripts")
	flags.StringVar(&app.opts.readme, "readme", "README.md", "README file holding the generated table")
	flags.StringSliceVarP(&app.opts.fields, "field", "f", []string{"Description", "Link"}, "table field, in column order (repeatable)")
	flags.StringSliceVarP(&app.opts.linkFields, "link-field", "l", []string{"Link"}, "table field rendered as a markdown link (repeatable)")
	flags.StringSliceVar(&app.opts.include, "include", []string{"*.py"}, "glob selecting candidate files")
	flags.StringSliceVar(&app.opts.ignore, "ignore", nil, "glob of files or directories to skip (adds to the defaults)")
	flags.IntVarP(&app.opts.workers, "workers", "j", 0, "parallel file readers (0 uses all CPUs)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app.changed = cmd.Flags().Changed
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for scriptindex.

The output should be evaluated by your shell. For example:

  # bash
  scriptindex completion bash > /usr/local/etc/bash_completion.d/scriptindex

  # zsh
  scriptindex completion zsh > "${fpath[1]}/_scriptindex"

  # fish
  scriptindex completion fish | source

  # PowerShell
  scriptindex completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  scriptindex gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
