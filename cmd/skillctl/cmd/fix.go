package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/metadata"
	"github.com/skillworks/skillctl/internal/skill"
)

func fixCommand() *cli.Command {
	return &cli.Command{
		Name:  "fix",
		Usage: "Repair skill metadata and backfill progressive_disclosure sections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Skills repository root",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report fixes without writing files",
			},
		},
		Action: runFix,
	}
}

func runFix(_ context.Context, cmd *cli.Command) error {
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

	files, err := skill.FindAll(root, cfg.Manifest.Sections, cfg.Package.Target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no skill documents found under %s\n", root)
		return cli.Exit("", ExitNoFiles)
	}

	opts := metadata.Options{DryRun: cmd.Bool("dry-run")}
	if opts.DryRun {
		fmt.Printf("[dry run] fixing %d skills...\n\n", len(files))
	} else {
		fmt.Printf("Fixing %d skills...\n\n", len(files))
	}

	totalFixes, skillsFixed := 0, 0
	for _, f := range files {
		dir := filepath.Dir(f)
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		rel = filepath.ToSlash(rel)

		fixes := collectFixes(dir, rel, opts)
		if len(fixes) == 0 {
			logrus.WithField("skill", rel).Debug("no fixes needed")
			continue
		}

		skillsFixed++
		totalFixes += len(fixes)
		fmt.Printf("📦 %s\n", rel)
		for _, fix := range fixes {
			fmt.Printf("   ✓ %s\n", fix)
		}
	}

	fmt.Printf("\nSummary: %d skills fixed, %d total fixes\n", skillsFixed, totalFixes)
	if opts.DryRun {
		fmt.Println("\n[dry run] no files were modified")
	}
	return nil
}

// collectFixes runs both fixers over one skill directory. Fixer failures
// are reported but never abort the sweep.
func collectFixes(dir, rel string, opts metadata.Options) []string {
	var fixes []string

	metaFixes, err := metadata.FixMetadata(dir, rel, opts)
	if err != nil {
		logrus.WithError(err).WithField("skill", rel).Warn("metadata fix failed")
	}
	fixes = append(fixes, metaFixes...)

	discFixes, err := metadata.FixDisclosure(dir, opts)
	if err != nil {
		if errors.Is(err, metadata.ErrNoFrontmatter) {
			logrus.WithField("skill", rel).Warn("no frontmatter, skipping progressive_disclosure")
		} else {
			logrus.WithError(err).WithField("skill", rel).Warn("progressive_disclosure fix failed")
		}
	}
	fixes = append(fixes, discFixes...)

	return fixes
}
