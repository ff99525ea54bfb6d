package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/skillworks/skillctl/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "skillctl",
		Usage:   "Maintain a curated skills documentation repository",
		Version: version.Version(),
		Description: `skillctl keeps a repository of SKILL.md documents healthy.

It lints skill prose for imperative voice and example structure, generates
and validates the repository manifest, repairs metadata sidecars, and
packages skills for deployment.

Examples:
  skillctl lint universal/
  skillctl lint --strict --format json .
  skillctl manifest --output manifest.json
  skillctl package --all --target dist/skills`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("SKILLCTL_VERBOSE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			lintCommand(),
			manifestCommand(),
			fixCommand(),
			packageCommand(),
			tokensCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
