package manifest

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillworks/skillctl/internal/config"
	"github.com/skillworks/skillctl/internal/skill"
	"github.com/skillworks/skillctl/internal/skill/gitinfo"
)

// ErrNoSkills is returned when no SKILL.md files are found under the
// configured sections.
var ErrNoSkills = errors.New("no skill documents found")

// Generator builds a manifest from a skills repository.
type Generator struct {
	root   string
	cfg    config.ManifestConfig
	deploy string // deployment dir excluded from discovery
	loader *skill.Loader
	log    *logrus.Logger
}

// NewGenerator creates a Generator rooted at the repository root.
// deployDir (the packaging target, root-relative) is excluded from
// discovery so already-packaged copies are never indexed twice.
func NewGenerator(root string, cfg config.ManifestConfig, deployDir string) *Generator {
	loader := skill.NewLoader(root)
	loader.DefaultAuthor = cfg.Author
	return &Generator{
		root:   root,
		cfg:    cfg,
		deploy: deployDir,
		loader: loader,
		log:    logrus.StandardLogger(),
	}
}

// Generate discovers all skills and builds the complete manifest.
func (g *Generator) Generate(ctx context.Context) (*Manifest, error) {
	files, err := skill.FindAll(g.root, g.cfg.Sections, g.deploy)
	if err != nil {
		return nil, fmt.Errorf("discovering skills: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoSkills
	}

	var all []Entry
	for _, f := range files {
		s, err := g.loader.Load(ctx, f)
		if err != nil {
			return nil, err
		}
		g.log.WithField("skill", s.SourcePath).Debug("resolved skill")
		all = append(all, *s)
	}

	var universal, examples []Entry
	toolchains := make(map[string][]Entry)
	for _, s := range all {
		switch s.Category {
		case skill.CategoryUniversal:
			universal = append(universal, s)
		case skill.CategoryToolchain:
			if s.Toolchain != nil {
				toolchains[*s.Toolchain] = append(toolchains[*s.Toolchain], s)
			}
		case skill.CategoryExample:
			examples = append(examples, s)
		}
	}

	sortEntries(universal)
	sortEntries(examples)
	toolchainCounts := make(map[string]int, len(toolchains))
	toolchainTotal := 0
	for name, entries := range toolchains {
		sortEntries(entries)
		toolchainCounts[name] = len(entries)
		toolchainTotal += len(entries)
	}

	today := time.Now().Format(gitinfo.DateFormat)
	m := &Manifest{
		Version:     g.cfg.Version,
		Repository:  g.cfg.Repository,
		Updated:     today,
		Description: g.cfg.Description,
		Skills: Skills{
			Universal:  emptyIfNil(universal),
			Toolchains: toolchains,
			Examples:   examples,
		},
		Metadata: Metadata{
			TotalSkills: len(all),
			Categories: Categories{
				Universal:  len(universal),
				Toolchains: toolchainTotal,
				Examples:   len(examples),
			},
			Toolchains:    toolchainCounts,
			LastUpdated:   today,
			SchemaVersion: SchemaVersion,
		},
		Provenance: Provenance{
			SkillsRepository:    g.cfg.Repository,
			Author:              g.cfg.Author,
			License:             g.cfg.License,
			AttributionRequired: g.cfg.License != "",
		},
	}

	return m, nil
}

// sortEntries orders entries by name for stable output.
func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// emptyIfNil keeps the universal section an array, never null, in JSON.
func emptyIfNil(entries []Entry) []Entry {
	if entries == nil {
		return []Entry{}
	}
	return entries
}
