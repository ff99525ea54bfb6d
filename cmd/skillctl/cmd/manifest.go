package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/manifest"
)

func manifestCommand() *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Generate or validate the repository manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Skills repository root",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Manifest path, relative to the root",
				Sources: cli.EnvVars("SKILLCTL_MANIFEST_PATH"),
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Validate the existing manifest instead of generating",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Preview without writing the manifest",
			},
		},
		Action: runManifest,
	}
}

func runManifest(ctx context.Context, cmd *cli.Command) error {
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

	manifestPath := cfg.Manifest.Path
	if cmd.IsSet("output") {
		manifestPath = cmd.String("output")
	}
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(root, manifestPath)
	}

	if cmd.Bool("validate") {
		return validateManifest(root, manifestPath)
	}

	g := manifest.NewGenerator(root, cfg.Manifest, cfg.Package.Target)
	m, err := g.Generate(ctx)
	if err != nil {
		if errors.Is(err, manifest.ErrNoSkills) {
			fmt.Fprintf(os.Stderr, "Error: no skill documents found under %s\n", root)
			return cli.Exit("", ExitNoFiles)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	v := manifest.NewValidator(root)
	valid := v.Validate(m)
	printValidationReport(v)
	if !valid {
		fmt.Fprintln(os.Stderr, "Error: generated manifest has validation errors")
		return cli.Exit("", ExitViolations)
	}

	printManifestSummary(m)

	if cmd.Bool("dry-run") {
		fmt.Printf("\n[dry run] would write %s\n", manifestPath)
		return nil
	}

	if err := manifest.Write(manifestPath, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	fmt.Printf("\nManifest written to %s\n", manifestPath)
	return nil
}

// validateManifest checks an existing manifest file.
func validateManifest(root, manifestPath string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	fmt.Printf("Validating %s...\n", manifestPath)
	v := manifest.NewValidator(root)
	valid := v.Validate(m)
	printValidationReport(v)
	if !valid {
		return cli.Exit("", ExitViolations)
	}
	return nil
}

// printValidationReport writes errors and warnings in a stable order.
func printValidationReport(v *manifest.Validator) {
	if len(v.Errors) > 0 {
		fmt.Println("\n❌ Errors:")
		for _, e := range v.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if len(v.Warnings) > 0 {
		fmt.Println("\n⚠️  Warnings:")
		for _, w := range v.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		fmt.Println("\n✅ Validation passed with no errors or warnings")
	} else if len(v.Errors) == 0 {
		fmt.Printf("\n✅ Validation passed with %d warning(s)\n", len(v.Warnings))
	} else {
		fmt.Printf("\n❌ Validation failed with %d error(s) and %d warning(s)\n",
			len(v.Errors), len(v.Warnings))
	}
}

// printManifestSummary writes the per-category breakdown.
func printManifestSummary(m *manifest.Manifest) {
	fmt.Printf("\nTotal skills: %d\n", m.Metadata.TotalSkills)
	fmt.Printf("  universal:  %d\n", m.Metadata.Categories.Universal)
	fmt.Printf("  toolchains: %d\n", m.Metadata.Categories.Toolchains)
	if m.Metadata.Categories.Examples > 0 {
		fmt.Printf("  examples:   %d\n", m.Metadata.Categories.Examples)
	}

	if len(m.Metadata.Toolchains) > 0 {
		names := make([]string, 0, len(m.Metadata.Toolchains))
		for name := range m.Metadata.Toolchains {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("\nToolchain breakdown:")
		for _, name := range names {
			fmt.Printf("  %s: %d\n", name, m.Metadata.Toolchains[name])
		}
	}
}
