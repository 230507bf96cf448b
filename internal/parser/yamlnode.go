package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// documentRoot returns the top-level node of a parsed document, or nil for an
// empty one.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return resolve(doc.Content[0])
	}
	return resolve(doc)
}

type pair struct {
	key   string
	value *yaml.Node
}

// pairs lists the entries of a mapping node in declaration order.
func pairs(n *yaml.Node) []pair {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, pair{key: n.Content[i].Value, value: resolve(n.Content[i+1])})
	}
	return out
}

// lookup returns the value for key in a mapping node. Keys compare case
// insensitively.
func lookup(n *yaml.Node, key string) *yaml.Node {
	for _, p := range pairs(n) {
		if strings.EqualFold(p.key, key) {
			return p.value
		}
	}
	return nil
}

func hasKey(n *yaml.Node, key string) bool {
	return lookup(n, key) != nil
}

func isMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

func scalarString(n *yaml.Node) (string, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

func scalarInt(n *yaml.Node) (int, bool) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, false
	}
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

// isFalse reports whether the node is an explicit boolean false.
func isFalse(n *yaml.Node) bool {
	n = resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		return false
	}
	return !v
}

// stringList reads a sequence of strings, a single scalar, or a mapping of
// node to boolean (only entries not set to false are kept). Sequence items
// written as single-key mappings contribute their key.
func stringList(n *yaml.Node) []string {
	n = resolve(n)
	out := make([]string, 0)
	if n == nil {
		return out
	}

	switch n.Kind {
	case yaml.ScalarNode:
		if s, ok := scalarString(n); ok && s != "" {
			out = append(out, s)
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			item = resolve(item)
			if s, ok := scalarString(item); ok {
				if s != "" {
					out = append(out, s)
				}
				continue
			}
			for _, p := range pairs(item) {
				if !isFalse(p.value) {
					out = append(out, p.key)
				}
			}
		}
	case yaml.MappingNode:
		for _, p := range pairs(n) {
			if !isFalse(p.value) {
				out = append(out, p.key)
			}
		}
	}
	return out
}
