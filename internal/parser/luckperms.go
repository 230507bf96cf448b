package parser

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	"permission-wizard/internal/model"
)

// luckPermsExport is the LuckPerms bulk export/import document.
type luckPermsExport struct {
	Groups []luckPermsGroup `json:"groups"`
}

type luckPermsGroup struct {
	Name  string          `json:"name"`
	Nodes []luckPermsNode `json:"nodes"`
}

type luckPermsNode struct {
	Key     string            `json:"key"`
	Value   *bool             `json:"value,omitempty"`
	Context map[string]string `json:"context,omitempty"`
}

func parseLuckPermsJSON(export *luckPermsExport) []model.ParsedRank {
	ranks := make([]model.ParsedRank, 0, len(export.Groups))
	for i, g := range export.Groups {
		if g.Name == "" {
			continue
		}
		rank := model.ParsedRank{
			Name:        g.Name,
			Weight:      declarationWeight(i),
			Permissions: make([]string, 0),
			Parents:     make([]string, 0),
		}

		for _, n := range g.Nodes {
			key := n.Key
			lower := strings.ToLower(key)
			switch {
			case strings.HasPrefix(lower, "group."):
				rank.Parents = append(rank.Parents, key[len("group."):])
			case strings.HasPrefix(lower, "weight."):
				if w, err := strconv.Atoi(key[len("weight."):]); err == nil {
					rank.Weight = w
				}
			case strings.HasPrefix(lower, "prefix."):
				rank.Prefix = metaValue(key)
				rank.Color = ExtractColor(rank.Prefix)
			case strings.HasPrefix(lower, "displayname."):
				rank.DisplayName = key[len("displayname."):]
			default:
				if n.Value != nil && !*n.Value {
					key = "-" + key
				}
				rank.Permissions = append(rank.Permissions, key)
			}
		}
		ranks = append(ranks, rank)
	}
	return ranks
}

// metaValue returns the value of a "prefix.<priority>.<value>" meta node. The
// value itself may contain dots.
func metaValue(key string) string {
	parts := strings.SplitN(key, ".", 3)
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[1]); err == nil {
			return parts[2]
		}
	}
	return key[strings.LastIndex(key, ".")+1:]
}

func parseLuckPermsYAML(root *yaml.Node) []model.ParsedRank {
	entries := pairs(root)
	ranks := make([]model.ParsedRank, 0, len(entries))
	for i, e := range entries {
		if !isMapping(e.value) {
			continue
		}
		rank := model.ParsedRank{
			Name:        e.key,
			Permissions: stringList(lookup(e.value, "permissions")),
			Parents:     stringList(lookup(e.value, "parents")),
		}

		if w, ok := scalarInt(lookup(e.value, "weight")); ok {
			rank.Weight = w
		} else {
			rank.Weight = declarationWeight(i)
		}
		if prefix, ok := scalarString(lookup(e.value, "prefix")); ok {
			rank.Prefix = prefix
			rank.Color = ExtractColor(prefix)
		}
		if name, ok := scalarString(lookup(e.value, "displayname")); ok {
			rank.DisplayName = name
		}
		ranks = append(ranks, rank)
	}
	return ranks
}
