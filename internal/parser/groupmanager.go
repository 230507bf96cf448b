package parser

import (
	"gopkg.in/yaml.v3"
	"permission-wizard/internal/model"
)

// GroupManager keeps ranks under "groups" with "inheritance" parents and the
// prefix in "info". It has no weight, so declaration order is used.
func parseGroupManager(root *yaml.Node) []model.ParsedRank {
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
			Parents:     stringList(lookup(e.value, "inheritance")),
		}
		if prefix, ok := scalarString(lookup(lookup(e.value, "info"), "prefix")); ok {
			rank.Prefix = prefix
			rank.Color = ExtractColor(prefix)
		}
		ranks = append(ranks, rank)
	}
	return ranks
}
