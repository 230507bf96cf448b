package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type importDocument struct {
	Groups []importGroup `json:"groups"`
}

type importGroup struct {
	Name  string       `json:"name"`
	Nodes []importNode `json:"nodes"`
}

type importNode struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// luckPermsJSON writes the LuckPerms bulk import document: per group a flat
// list of weight, display name, prefix, permission and parent nodes.
func luckPermsJSON(ranks []RankPermissions) (string, error) {
	doc := importDocument{Groups: make([]importGroup, 0, len(ranks))}
	for _, rp := range ranks {
		w := weight(rp.Rank)
		nodes := []importNode{{Key: fmt.Sprintf("weight.%d", w), Value: true}}
		if rp.Rank.DisplayName != "" {
			nodes = append(nodes, importNode{Key: "displayname." + rp.Rank.DisplayName, Value: true})
		}
		if prefix := RenderPrefix(rp.Rank); prefix != "" {
			nodes = append(nodes, importNode{Key: fmt.Sprintf("prefix.%d.%s", w, prefix), Value: true})
		}
		for _, p := range rp.Permissions {
			if strings.HasPrefix(p, "-") {
				nodes = append(nodes, importNode{Key: p[1:], Value: false})
				continue
			}
			nodes = append(nodes, importNode{Key: p, Value: true})
		}
		if rp.Parent != "" {
			nodes = append(nodes, importNode{Key: "group." + rp.Parent, Value: true})
		}
		doc.Groups = append(doc.Groups, importGroup{Name: rp.Rank.Name, Nodes: nodes})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
