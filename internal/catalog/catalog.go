package catalog

import (
	"errors"
	"fmt"
	"sort"

	"permission-wizard/internal/model"
)

var UnknownPluginError = errors.New("unknown plugin")

// Catalog is a read-only view over plugins and their permission nodes.
type Catalog struct {
	plugins []model.Plugin
	byId    map[string]int
}

// New builds a catalog from the given plugins. Plugins sharing an id are
// merged, later nodes appended after earlier ones.
func New(plugins []model.Plugin) *Catalog {
	c := &Catalog{byId: make(map[string]int, len(plugins))}
	for _, p := range plugins {
		c.add(p)
	}
	return c
}

var defaultCatalog = New(builtinPlugins())

// Default returns the bundled catalog.
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) add(p model.Plugin) {
	p = clonePlugin(p)
	for i := range p.Permissions {
		p.Permissions[i].PluginId = p.Id
		if p.Permissions[i].Id == "" {
			p.Permissions[i].Id = p.Id + ":" + p.Permissions[i].Node
		}
	}

	if idx, ok := c.byId[p.Id]; ok {
		c.plugins[idx].Permissions = append(c.plugins[idx].Permissions, p.Permissions...)
		return
	}
	c.byId[p.Id] = len(c.plugins)
	c.plugins = append(c.plugins, p)
}

// WithCustomPlugins returns a new catalog with the custom plugins appended.
// The receiver is not modified.
func (c *Catalog) WithCustomPlugins(custom []model.Plugin) *Catalog {
	out := New(c.plugins)
	for _, p := range custom {
		p.Custom = true
		out.add(p)
	}
	return out
}

func (c *Catalog) Plugins() []model.Plugin {
	out := make([]model.Plugin, len(c.plugins))
	for i, p := range c.plugins {
		out[i] = clonePlugin(p)
	}
	return out
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byId[id]
	return ok
}

func (c *Catalog) Plugin(id string) (model.Plugin, error) {
	idx, ok := c.byId[id]
	if !ok {
		return model.Plugin{}, fmt.Errorf("%w: %s", UnknownPluginError, id)
	}
	return clonePlugin(c.plugins[idx]), nil
}

// MustPlugin is Plugin for ids that are known to exist. A missing id is a
// data-integrity bug and panics.
func (c *Catalog) MustPlugin(id string) model.Plugin {
	p, err := c.Plugin(id)
	if err != nil {
		panic(err)
	}
	return p
}

// Nodes returns every node owned by the given plugins, sorted by node string
// and then plugin id.
func (c *Catalog) Nodes(pluginIds []string) ([]model.PermissionNode, error) {
	seen := make(map[string]bool, len(pluginIds))
	nodes := make([]model.PermissionNode, 0)
	for _, id := range pluginIds {
		if seen[id] {
			continue
		}
		seen[id] = true

		idx, ok := c.byId[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", UnknownPluginError, id)
		}
		nodes = append(nodes, c.plugins[idx].Permissions...)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Node != nodes[j].Node {
			return nodes[i].Node < nodes[j].Node
		}
		return nodes[i].PluginId < nodes[j].PluginId
	})
	return nodes, nil
}

func clonePlugin(p model.Plugin) model.Plugin {
	perms := make([]model.PermissionNode, len(p.Permissions))
	for i, n := range p.Permissions {
		if n.ServerTypes != nil {
			types := make([]model.ServerType, len(n.ServerTypes))
			copy(types, n.ServerTypes)
			n.ServerTypes = types
		}
		perms[i] = n
	}
	p.Permissions = perms
	return p
}
