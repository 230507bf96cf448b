package generator

import (
	"errors"
	"fmt"

	"permission-wizard/internal/catalog"
	"permission-wizard/internal/model"
)

var UnsupportedFormatError = errors.New("unsupported output format")

// Advisories attached to degenerate but valid output.
const (
	NoRanksAdvisory            = "No ranks defined, the generated config is empty."
	NoPermissionPluginAdvisory = "No permission plugin selected, defaulting to LuckPerms."
	JSONTargetAdvisory         = "JSON bulk import is a LuckPerms format, the output targets LuckPerms."
)

type Options struct {
	ServerType      model.ServerType
	SelectedPlugins []string
	Ranks           []model.Rank

	// PermissionPlugin forces the target dialect. When empty the dialect is
	// taken from the first permission plugin in SelectedPlugins.
	PermissionPlugin model.Dialect
}

func OptionsFromSession(s model.Session) Options {
	s = s.Clone()
	return Options{
		ServerType:       s.ServerType,
		SelectedPlugins:  s.SelectedPlugins,
		Ranks:            s.Ranks,
		PermissionPlugin: s.PermissionPlugin,
	}
}

// Output is a generated payload plus where the target plugin expects it.
type Output struct {
	Format     model.Format  `json:"format"`
	Dialect    model.Dialect `json:"dialect"`
	Filename   string        `json:"filename"`
	Path       string        `json:"path"`
	Content    string        `json:"content"`
	Advisories []string      `json:"advisories"`
}

type Generator struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Generator {
	return &Generator{catalog: c}
}

// Generate renders the ranks in the requested format. Ranks are never
// modified. An unknown plugin id in SelectedPlugins is an error.
func (g *Generator) Generate(format model.Format, opts Options) (*Output, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %s", UnsupportedFormatError, format)
	}

	advisories := make([]string, 0)
	dialect, ok := resolveDialect(opts)
	if !ok {
		advisories = append(advisories, NoPermissionPluginAdvisory)
	}
	if format == model.FormatJSON && dialect != model.DialectLuckPerms {
		dialect = model.DialectLuckPerms
		advisories = append(advisories, JSONTargetAdvisory)
	}
	if len(opts.Ranks) == 0 {
		advisories = append(advisories, NoRanksAdvisory)
	}

	perms, err := g.EffectivePermissions(opts)
	if err != nil {
		return nil, err
	}

	w := writers[dialect]
	out := &Output{Format: format, Dialect: dialect, Advisories: advisories}
	switch format {
	case model.FormatYAML:
		out.Filename, out.Path = w.yamlFile, w.path
		out.Content, err = w.yaml(perms)
	case model.FormatCommands:
		out.Filename, out.Path = string(dialect)+"-commands.txt", ""
		out.Content = w.commands(perms)
	case model.FormatJSON:
		out.Filename, out.Path = "luckperms-import.json", w.path
		out.Content, err = luckPermsJSON(perms)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s for %s: %w", format, dialect, err)
	}
	return out, nil
}

func resolveDialect(opts Options) (model.Dialect, bool) {
	if opts.PermissionPlugin.Valid() {
		return opts.PermissionPlugin, true
	}
	for _, id := range opts.SelectedPlugins {
		if d, ok := catalog.PermissionPluginDialect(id); ok {
			return d, true
		}
	}
	return model.DialectLuckPerms, false
}

type dialectWriter struct {
	yamlFile string
	path     string
	yaml     func([]RankPermissions) (string, error)
	commands func([]RankPermissions) string
}

var writers = map[model.Dialect]dialectWriter{
	model.DialectLuckPerms: {
		yamlFile: "luckperms-groups.yml",
		path:     "plugins/LuckPerms/",
		yaml:     luckPermsYAML,
		commands: luckPermsCommands,
	},
	model.DialectGroupManager: {
		yamlFile: "groups.yml",
		path:     "plugins/GroupManager/worlds/world/",
		yaml:     groupManagerYAML,
		commands: groupManagerCommands,
	},
	model.DialectPermissionsEx: {
		yamlFile: "permissions.yml",
		path:     "plugins/PermissionsEx/",
		yaml:     permissionsExYAML,
		commands: permissionsExCommands,
	},
}
