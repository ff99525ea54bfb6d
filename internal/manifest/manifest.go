// Package manifest builds and validates the repository manifest: a single
// JSON document indexing every skill with token estimates, classification,
// and provenance.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/skillworks/skillctl/internal/skill"
)

// SchemaVersion identifies the manifest metadata schema.
const SchemaVersion = "2.0.0"

// Manifest is the top-level manifest document.
type Manifest struct {
	Version     string     `json:"version"`
	Repository  string     `json:"repository"`
	Updated     string     `json:"updated"`
	Description string     `json:"description"`
	Skills      Skills     `json:"skills"`
	Metadata    Metadata   `json:"metadata"`
	Provenance  Provenance `json:"provenance"`
}

// Skills groups skill entries by category. Toolchain skills are further
// keyed by toolchain name.
type Skills struct {
	Universal  []Entry            `json:"universal"`
	Toolchains map[string][]Entry `json:"toolchains"`
	Examples   []Entry            `json:"examples,omitempty"`
}

// Entry is one skill record in the manifest.
type Entry = skill.Skill

// Metadata carries aggregate statistics about the manifest.
type Metadata struct {
	TotalSkills   int            `json:"total_skills"`
	Categories    Categories     `json:"categories"`
	Toolchains    map[string]int `json:"toolchains"`
	LastUpdated   string         `json:"last_updated"`
	SchemaVersion string         `json:"schema_version"`
}

// Categories counts skills per category.
type Categories struct {
	Universal  int `json:"universal"`
	Toolchains int `json:"toolchains"`
	Examples   int `json:"examples"`
}

// Provenance records where the skills came from.
type Provenance struct {
	SourceRepository    string `json:"source_repository,omitempty"`
	SkillsRepository    string `json:"skills_repository,omitempty"`
	Author              string `json:"author,omitempty"`
	License             string `json:"license,omitempty"`
	AttributionRequired bool   `json:"attribution_required"`
}

// AllEntries flattens every skill entry in the manifest, in section order:
// universal, toolchains (by toolchain name, map order), examples.
func (m *Manifest) AllEntries() []Entry {
	var all []Entry
	all = append(all, m.Skills.Universal...)
	for _, entries := range m.Skills.Toolchains {
		all = append(all, entries...)
	}
	all = append(all, m.Skills.Examples...)
	return all
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Write encodes the manifest as indented JSON with a trailing newline.
// Object keys of the toolchains maps marshal in sorted order, so the output
// is byte-stable across runs with unchanged inputs apart from dates.
func Write(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
