package parser

import (
	"gopkg.in/yaml.v3"
	"permission-wizard/internal/model"
)

// PermissionsEx keeps ranks under "groups" with "parents" and the prefix in
// "options". Like GroupManager it has no weight.
func parsePermissionsEx(root *yaml.Node) []model.ParsedRank {
	entries := pairs(lookup(root, "groups"))
	ranks := make([]model.ParsedRank, 0, len(entries))
	for i, e := range entries {
		if !isMapping(e.value) {
			continue
		}
		rank := model.ParsedRank{
			Name:        e.key,
			Weight:      declarationWeight(i),
			Permissions: stringList(lookup(e.value, "permissions")),
			Parents:     stringList(lookup(e.value, "parents")),
		}
		if prefix, ok := scalarString(lookup(lookup(e.value, "options"), "prefix")); ok {
			rank.Prefix = prefix
			rank.Color = ExtractColor(prefix)
		}
		ranks = append(ranks, rank)
	}
	return ranks
}
