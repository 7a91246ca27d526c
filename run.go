package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentflare-ai/go-scriptindex/internal/config"
	"github.com/agentflare-ai/go-scriptindex/internal/index"
)

// usageExitCode is returned for bad flags or configuration (EX_USAGE).
const usageExitCode = 64

type options struct {
	configPath string
	root       string
	readme     string
	fields     []string
	linkFields []string
	include    []string
	ignore     []string
	workers    int
	verbose    bool
}

type cliApp struct {
	stdout  io.Writer
	stderr  io.Writer
	opts    options
	changed func(name string) bool
}

// exitError carries a pipeline result that should end the process with a
// non-zero status. err is nil when there is nothing to report beyond the
// status itself.
type exitError struct {
	result index.Result
	err    error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return e.result.String()
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// exitCode maps an error returned by run to a process status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.result.ExitCode()
	}
	return usageExitCode
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, positionals []string) error {
	level := slog.LevelWarn
	if app.opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(app.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := app.resolveConfig(positionals)
	if err != nil {
		return err
	}
	fsys, err := index.NewOSFileSystem(cfg.Include, cfg.Ignore)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "indexing scripts",
		"root", cfg.Root,
		"readme", cfg.Readme,
		"fields", cfg.TableFields,
		"link_fields", cfg.LinkFields,
	)

	result, err := index.Run(fsys, index.Options{
		Root:     cfg.Root,
		Document: cfg.Readme,
		Fields:   cfg.Fields(),
		Workers:  cfg.Workers,
		Logger:   logger,
	})
	app.report(result, cfg.Readme)
	switch result {
	case index.NoModification:
		return nil
	case index.ModifiedDocument:
		return &exitError{result: result}
	default:
		return &exitError{result: result, err: err}
	}
}

// resolveConfig layers explicitly set flags and the positional root over the
// file and environment configuration.
func (app *cliApp) resolveConfig(positionals []string) (config.Config, error) {
	cfg, err := config.Load(app.opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	changed := app.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if changed("root") {
		cfg.Root = app.opts.root
	}
	if len(positionals) == 1 {
		if changed("root") && positionals[0] != app.opts.root {
			return config.Config{}, errors.New("root given both as argument and --root")
		}
		cfg.Root = positionals[0]
	}
	if changed("readme") {
		cfg.Readme = app.opts.readme
	}
	if changed("field") {
		cfg.TableFields = app.opts.fields
	}
	if changed("link-field") {
		cfg.LinkFields = app.opts.linkFields
	}
	if changed("include") {
		cfg.Include = app.opts.include
	}
	if changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, app.opts.ignore...)
	}
	if changed("workers") {
		cfg.Workers = app.opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (app *cliApp) report(result index.Result, readme string) {
	r := lipgloss.NewRenderer(app.stdout)
	switch result {
	case index.ModifiedDocument:
		fmt.Fprintln(app.stdout, r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")).Render("Modified "+readme))
	case index.NoModification:
		fmt.Fprintln(app.stdout, r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Nothing to modify"))
	}
}
