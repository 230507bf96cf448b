package parser

import (
	"sort"

	"github.com/google/uuid"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/model"
)

// ConvertToRanks maps parsed ranks to canonical ranks. Ranks are ordered by
// weight and renumbered from 0, and the level is inferred from the name.
func ConvertToRanks(parsed []model.ParsedRank) []model.Rank {
	sorted := make([]model.ParsedRank, len(parsed))
	copy(sorted, parsed)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})

	ranks := make([]model.Rank, len(sorted))
	for i, p := range sorted {
		displayName := p.DisplayName
		if displayName == "" {
			displayName = p.Name
		}
		color := p.Color
		if color == "" {
			color = ExtractColor(p.Prefix)
		}

		perms := make([]string, len(p.Permissions))
		copy(perms, p.Permissions)

		ranks[i] = model.Rank{
			Id:          uuid.NewString(),
			Name:        model.SanitizeName(p.Name),
			DisplayName: displayName,
			Prefix:      p.Prefix,
			PrefixColor: color,
			Separator:   " ",
			Order:       i,
			Level:       classifier.InferLevelFromName(p.Name),
			Permissions: perms,
		}
	}
	return ranks
}
