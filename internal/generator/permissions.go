package generator

import (
	"sort"

	"permission-wizard/internal/model"
)

// RankPermissions is a rank with its effective permission set and the rank
// directly below it in the inheritance chain.
type RankPermissions struct {
	Rank        model.Rank
	Parent      string
	Permissions []string
}

// EffectivePermissions computes, for each rank from lowest to highest, the
// catalog nodes of the selected plugins that apply to the server type and are
// recommended at or below the rank's level, plus every default node and the
// imported permissions of every rank at or below that level. Each set is
// sorted.
func (g *Generator) EffectivePermissions(opts Options) ([]RankPermissions, error) {
	nodes, err := g.catalog.Nodes(opts.SelectedPlugins)
	if err != nil {
		return nil, err
	}

	applicable := make([]model.PermissionNode, 0, len(nodes))
	for _, n := range nodes {
		if n.AppliesTo(opts.ServerType) {
			applicable = append(applicable, n)
		}
	}

	ranks := model.NormalizeOrder(opts.Ranks)
	out := make([]RankPermissions, len(ranks))
	for i, rank := range ranks {
		level := effectiveLevel(rank)

		set := make(map[string]bool)
		for _, n := range applicable {
			if n.IsDefault || n.RecommendedRank.AtMost(level) {
				set[n.Node] = true
			}
		}
		for _, lower := range ranks {
			if !effectiveLevel(lower).AtMost(level) {
				continue
			}
			for _, p := range lower.Permissions {
				if p != "" {
					set[p] = true
				}
			}
		}

		perms := make([]string, 0, len(set))
		for p := range set {
			perms = append(perms, p)
		}
		sort.Strings(perms)

		out[i] = RankPermissions{Rank: rank, Permissions: perms}
		if i > 0 {
			out[i].Parent = ranks[i-1].Name
		}
	}
	return out, nil
}

// effectiveLevel treats a rank without a known level as a player.
func effectiveLevel(rank model.Rank) model.RankLevel {
	if !rank.Level.Valid() {
		return model.LevelPlayer
	}
	return rank.Level
}
