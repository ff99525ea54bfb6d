package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/packager"
)

func packageCommand() *cli.Command {
	return &cli.Command{
		Name:      "package",
		Usage:     "Validate and copy skills into a flat deployment directory",
		ArgsUsage: "[SKILL_PATH]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Skills repository root",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Glob to match multiple skills (e.g. \"toolchains/python/*\")",
			},
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Package every skill",
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Deployment directory",
				Sources: cli.EnvVars("SKILLCTL_PACKAGE_TARGET"),
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Validate only, do not copy",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite already packaged skills",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview without copying",
			},
		},
		Action: runPackage,
	}
}

func runPackage(_ context.Context, cmd *cli.Command) error {
	root, err := filepath.Abs(cmd.String("root"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	target := cfg.Package.Target
	if cmd.IsSet("target") {
		target = cmd.String("target")
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}

	p := packager.New(root, target, cfg.Manifest.Sections)

	dirs, err := selectSkills(cmd, p, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no skills found to process")
		return cli.Exit("", ExitNoFiles)
	}

	validateOnly := cmd.Bool("validate")
	force := cmd.Bool("force")
	dryRun := cmd.Bool("dry-run")

	fmt.Printf("Processing %d skill(s)...\n", len(dirs))
	switch {
	case validateOnly:
		fmt.Println("Mode: validation only")
	case dryRun:
		fmt.Println("Mode: dry run")
	default:
		fmt.Printf("Target: %s\n", target)
	}

	succeeded, failed := 0, 0
	for _, dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		fmt.Printf("\n📦 %s\n", filepath.ToSlash(rel))

		if validateOnly {
			if p.Validator.Validate(dir) {
				fmt.Println("   ✅ valid")
				succeeded++
			} else {
				for _, e := range p.Validator.Errors {
					fmt.Printf("   ❌ %s\n", e)
				}
				failed++
			}
			printPackageWarnings(&p.Validator)
			continue
		}

		err = p.Package(dir, force, dryRun)
		printPackageWarnings(&p.Validator)
		switch {
		case err == nil:
			if dryRun {
				fmt.Printf("   [dry run] would package as %s\n", p.FlatName(dir))
			} else {
				fmt.Printf("   ✅ packaged as %s\n", p.FlatName(dir))
			}
			succeeded++
		case errors.Is(err, packager.ErrTargetExists):
			fmt.Printf("   ❌ %v (use --force to overwrite)\n", err)
			failed++
		default:
			fmt.Printf("   ❌ %v\n", err)
			failed++
		}
	}

	fmt.Printf("\nSummary: %d successful, %d failed\n", succeeded, failed)
	if failed > 0 {
		return cli.Exit("", ExitViolations)
	}
	if !validateOnly && !dryRun {
		fmt.Printf("\nSkills packaged to %s\n", target)
	}
	return nil
}

// selectSkills resolves which skill directories the invocation targets.
func selectSkills(cmd *cli.Command, p *packager.Packager, root string) ([]string, error) {
	switch {
	case cmd.Bool("all"):
		return p.FindSkills("*")
	case cmd.IsSet("pattern"):
		return p.FindSkills(cmd.String("pattern"))
	case cmd.Args().Len() > 0:
		dir := cmd.Args().First()
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("skill path not found: %s", cmd.Args().First())
		}
		return []string{dir}, nil
	default:
		return nil, errors.New("provide a skill path, --pattern, or --all")
	}
}

func printPackageWarnings(v *packager.Validator) {
	for _, w := range v.Warnings {
		fmt.Printf("   ⚠️  %s\n", w)
	}
}
