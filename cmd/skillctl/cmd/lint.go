package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/discovery"
	"github.com/skillworks/skillctl/internal/linter"
	"github.com/skillworks/skillctl/internal/reporter"
	"github.com/skillworks/skillctl/internal/rules"
)

// Exit codes
const (
	ExitSuccess     = 0 // No violations (or below fail-level threshold)
	ExitViolations  = 1 // Violations found at or above fail-level
	ExitConfigError = 2 // Parse or config error
	ExitNoFiles     = 3 // No skill documents found
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Lint skill documents for prose and structure issues",
		ArgsUsage: "[PATH...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, json",
				Sources: cli.EnvVars("SKILLCTL_FORMAT", "SKILLCTL_OUTPUT_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or file path",
				Sources: cli.EnvVars("SKILLCTL_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.StringFlag{
				Name:    "fail-level",
				Usage:   "Minimum severity to cause non-zero exit: error, warning, info",
				Sources: cli.EnvVars("SKILLCTL_OUTPUT_FAIL_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Fail on warnings too (shorthand for --fail-level warning)",
				Sources: cli.EnvVars("SKILLCTL_STRICT"),
			},
			&cli.IntFlag{
				Name:    "max-detail",
				Usage:   "Maximum violations shown per type group (0 hides detail)",
				Sources: cli.EnvVars("SKILLCTL_OUTPUT_MAX_DETAIL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (can be repeated)",
				Sources: cli.EnvVars("SKILLCTL_EXCLUDE"),
			},
			&cli.StringSliceFlag{
				Name:    "select",
				Usage:   "Enable specific rules (pattern: rule-code, category/*, *)",
				Sources: cli.EnvVars("SKILLCTL_RULES_SELECT"),
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Usage:   "Disable specific rules (pattern: rule-code, category/*, *)",
				Sources: cli.EnvVars("SKILLCTL_RULES_IGNORE"),
			},
		},
		Action: runLint,
	}
}

// runLint is the action handler for the lint command.
func runLint(_ context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	cfg, err := loadLintConfig(cmd, inputs[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	l := linter.New(cfg)
	reports, err := l.Run(inputs)
	if err != nil {
		if errors.Is(err, discovery.ErrNoFiles) {
			fmt.Fprintf(os.Stderr, "Error: no skill documents found in %v\n", inputs)
			return cli.Exit("", ExitNoFiles)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	return writeLintReport(cmd, cfg, l, reports)
}

// loadLintConfig loads configuration and applies CLI flag overrides.
func loadLintConfig(cmd *cli.Command, target string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath := cmd.String("config"); configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load(target)
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
	}
	if cmd.IsSet("output") {
		cfg.Output.Path = cmd.String("output")
	}
	if cmd.IsSet("fail-level") {
		cfg.Output.FailLevel = cmd.String("fail-level")
	}
	if cmd.Bool("strict") && !cmd.IsSet("fail-level") {
		cfg.Output.FailLevel = "warning"
	}
	if cmd.IsSet("max-detail") {
		cfg.Output.MaxDetail = cmd.Int("max-detail")
	}
	if cmd.IsSet("exclude") {
		cfg.Discovery.ExcludePatterns = append(cfg.Discovery.ExcludePatterns, cmd.StringSlice("exclude")...)
	}
	if cmd.IsSet("select") {
		cfg.Rules.Include = append(cfg.Rules.Include, cmd.StringSlice("select")...)
	}
	if cmd.IsSet("ignore") {
		cfg.Rules.Exclude = append(cfg.Rules.Exclude, cmd.StringSlice("ignore")...)
	}

	// Re-validate after overrides so a bad flag value fails like a bad
	// config file value.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// writeLintReport formats and writes the violation report, then maps the
// results to an exit code.
func writeLintReport(cmd *cli.Command, cfg *config.Config, l *linter.Linter, reports []reporter.FileReport) error {
	formatType, err := reporter.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	writer, closeWriter, err := reporter.GetWriter(cfg.Output.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	defer func() {
		if err := closeWriter(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output: %v\n", err)
		}
	}()

	opts := reporter.Options{
		Format:    formatType,
		Writer:    writer,
		MaxDetail: cfg.Output.MaxDetail,
	}
	if cfg.Output.NoColor || (cmd.IsSet("no-color") && cmd.Bool("no-color")) {
		noColor := false
		opts.Color = &noColor
	}
	// Piped or file output never gets ANSI styling.
	if opts.Color == nil {
		if f, ok := writer.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
			noColor := false
			opts.Color = &noColor
		}
	}

	rep, err := reporter.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create reporter: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	metadata := reporter.ReportMetadata{
		FilesScanned: len(reports),
		RulesEnabled: l.EnabledRuleCount(),
	}
	if err := rep.Report(reports, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	threshold, err := rules.ParseSeverity(cfg.Output.FailLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid fail-level %q\n", cfg.Output.FailLevel)
		return cli.Exit("", ExitConfigError)
	}

	if worst, found := linter.DetermineExitSeverity(reports); found && worst.IsAtLeast(threshold) {
		return cli.Exit("", ExitViolations)
	}
	return nil
}
