package generator

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"
)

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func integer(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func boolean(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func sequence(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(values) == 0 {
		n.Style = yaml.FlowStyle
	}
	for _, v := range values {
		n.Content = append(n.Content, str(v))
	}
	return n
}

func set(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}

func parents(rp RankPermissions) []string {
	if rp.Parent == "" {
		return []string{}
	}
	return []string{rp.Parent}
}

func encode(root *yaml.Node) (string, error) {
	if len(root.Content) == 0 {
		root.Style = yaml.FlowStyle
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// luckPermsYAML writes one top-level group per rank.
func luckPermsYAML(ranks []RankPermissions) (string, error) {
	root := mappingNode()
	for _, rp := range ranks {
		group := mappingNode()
		set(group, "weight", integer(weight(rp.Rank)))
		if prefix := RenderPrefix(rp.Rank); prefix != "" {
			set(group, "prefix", str(prefix))
		}
		set(group, "displayname", str(rp.Rank.DisplayName))
		set(group, "permissions", sequence(rp.Permissions))
		set(group, "parents", sequence(parents(rp)))
		set(root, rp.Rank.Name, group)
	}
	return encode(root)
}

func groupManagerYAML(ranks []RankPermissions) (string, error) {
	groups := mappingNode()
	for i, rp := range ranks {
		info := mappingNode()
		set(info, "prefix", str(RenderPrefix(rp.Rank)))
		set(info, "build", boolean(true))
		set(info, "suffix", str(""))

		group := mappingNode()
		set(group, "default", boolean(i == 0))
		set(group, "permissions", sequence(rp.Permissions))
		set(group, "inheritance", sequence(parents(rp)))
		set(group, "info", info)
		set(groups, rp.Rank.Name, group)
	}
	if len(groups.Content) == 0 {
		groups.Style = yaml.FlowStyle
	}

	root := mappingNode()
	set(root, "groups", groups)
	return encode(root)
}

func permissionsExYAML(ranks []RankPermissions) (string, error) {
	groups := mappingNode()
	for i, rp := range ranks {
		options := mappingNode()
		set(options, "prefix", str(RenderPrefix(rp.Rank)))
		// PermissionsEx ladders rank lower numbers higher.
		set(options, "rank", str(strconv.Itoa((len(ranks)-i)*100)))
		if i == 0 {
			set(options, "default", str("true"))
		}

		group := mappingNode()
		set(group, "permissions", sequence(rp.Permissions))
		set(group, "parents", sequence(parents(rp)))
		set(group, "options", options)
		set(groups, rp.Rank.Name, group)
	}
	if len(groups.Content) == 0 {
		groups.Style = yaml.FlowStyle
	}

	root := mappingNode()
	set(root, "groups", groups)
	return encode(root)
}
