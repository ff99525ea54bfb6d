package manifest

// TokenSummary aggregates token counts across every skill in a manifest.
// Intended for dashboards and CI size checks.
type TokenSummary struct {
	TotalSkills           int            `json:"total_skills"`
	EntryPointTokensTotal int            `json:"entry_point_tokens_total"`
	FullTokensTotal       int            `json:"full_tokens_total"`
	Categories            Categories     `json:"categories"`
	Toolchains            map[string]int `json:"toolchains"`
	LastUpdated           string         `json:"last_updated"`
}

// Summarize computes the token summary for a manifest.
func Summarize(m *Manifest) TokenSummary {
	entries := m.AllEntries()

	entryTotal, fullTotal := 0, 0
	for i := range entries {
		entryTotal += entries[i].EntryPointTokens
		fullTotal += entries[i].FullTokens
	}

	lastUpdated := m.Metadata.LastUpdated
	if lastUpdated == "" {
		lastUpdated = m.Updated
	}

	return TokenSummary{
		TotalSkills:           len(entries),
		EntryPointTokensTotal: entryTotal,
		FullTokensTotal:       fullTotal,
		Categories:            m.Metadata.Categories,
		Toolchains:            m.Metadata.Toolchains,
		LastUpdated:           lastUpdated,
	}
}
