package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/model"
)

const luckPermsYAML = `admin:
  weight: 100
  prefix: '&c[Admin] '
  displayname: Administrator
  permissions:
  - essentials.ban
  - worldedit.*
  parents:
  - default
default:
  weight: 0
  prefix: '&7'
  permissions:
  - essentials.spawn
vip:
  weight: 10
  permissions:
  - essentials.fly
`

const luckPermsJSON = `{
  "groups": [
    {
      "name": "default",
      "nodes": [
        {"key": "weight.0"},
        {"key": "essentials.spawn", "value": true},
        {"key": "essentials.fly", "value": false}
      ]
    },
    {
      "name": "mod",
      "nodes": [
        {"key": "weight.50"},
        {"key": "prefix.50.&9[Mod.Team] "},
        {"key": "displayname.Moderator"},
        {"key": "group.default"},
        {"key": "litebans.ban"},
        {"key": "coreprotect.inspect", "value": true, "context": {"server": "survival"}}
      ]
    }
  ]
}`

const groupManagerYAML = `groups:
  Default:
    default: true
    permissions:
    - essentials.spawn
    inheritance: []
    info:
      prefix: '&7'
      build: true
  Moderator:
    default: false
    permissions:
    - essentials.kick
    - -essentials.fly
    inheritance:
    - default
    info:
      prefix: '&9[Mod] '
`

const permissionsExYAML = `groups:
  default:
    default: true
    permissions:
    - essentials.spawn
    parents: []
    options:
      prefix: '&7'
  vip:
    permissions:
    - essentials.fly
    parents:
    - default
    options:
      prefix: '&a[VIP] '
      rank: '900'
`

func TestDetectPluginType(t *testing.T) {
	tests := []struct {
		name    string
		content string

		want   model.Dialect
		wantOk bool
	}{
		{name: "luckperms yaml", content: luckPermsYAML, want: model.DialectLuckPerms, wantOk: true},
		{name: "luckperms yaml without weight", content: "member:\n  permissions:\n  - a.b\n", want: model.DialectLuckPerms, wantOk: true},
		{name: "luckperms json", content: luckPermsJSON, want: model.DialectLuckPerms, wantOk: true},
		{name: "groupmanager", content: groupManagerYAML, want: model.DialectGroupManager, wantOk: true},
		{name: "groupmanager info only", content: "groups:\n  default:\n    info:\n      prefix: x\n", want: model.DialectGroupManager, wantOk: true},
		{name: "permissionsex", content: permissionsExYAML, want: model.DialectPermissionsEx, wantOk: true},
		{name: "yaml list", content: "- a\n- b\n"},
		{name: "scalar", content: "hello"},
		{name: "empty", content: "   \n"},
		{name: "malformed yaml", content: "groups: [unclosed\n"},
		{name: "json without groups", content: `{"users": []}`},
		{name: "unknown mapping", content: "server:\n  motd: hi\n"},
		{name: "groups without markers", content: "groups:\n  default:\n    permissions:\n    - a.b\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := DetectPluginType(test.content)
			assert.Equal(t, test.wantOk, ok)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseConfig_LuckPermsYAML(t *testing.T) {
	cfg, err := ParseConfig(luckPermsYAML)
	require.NoError(t, err)

	assert.Equal(t, model.DialectLuckPerms, cfg.PluginType)
	require.Len(t, cfg.Ranks, 3)

	// Sorted by weight, not declaration order.
	assert.Equal(t, "default", cfg.Ranks[0].Name)
	assert.Equal(t, "vip", cfg.Ranks[1].Name)
	assert.Equal(t, "admin", cfg.Ranks[2].Name)

	admin := cfg.Ranks[2]
	assert.Equal(t, 100, admin.Weight)
	assert.Equal(t, "&c[Admin] ", admin.Prefix)
	assert.Equal(t, "&c", admin.Color)
	assert.Equal(t, "Administrator", admin.DisplayName)
	assert.Equal(t, []string{"essentials.ban", "worldedit.*"}, admin.Permissions)
	assert.Equal(t, []string{"default"}, admin.Parents)

	assert.Equal(t, []string{catalog.EssentialsX, catalog.WorldEdit}, cfg.DetectedPlugins)
}

func TestParseConfig_LuckPermsJSON(t *testing.T) {
	cfg, err := ParseConfig(luckPermsJSON)
	require.NoError(t, err)

	assert.Equal(t, model.DialectLuckPerms, cfg.PluginType)
	require.Len(t, cfg.Ranks, 2)

	def := cfg.Ranks[0]
	assert.Equal(t, "default", def.Name)
	assert.Equal(t, []string{"essentials.spawn", "-essentials.fly"}, def.Permissions)

	mod := cfg.Ranks[1]
	assert.Equal(t, 50, mod.Weight)
	assert.Equal(t, "&9[Mod.Team] ", mod.Prefix)
	assert.Equal(t, "&9", mod.Color)
	assert.Equal(t, "Moderator", mod.DisplayName)
	assert.Equal(t, []string{"default"}, mod.Parents)
	assert.Equal(t, []string{"litebans.ban", "coreprotect.inspect"}, mod.Permissions)

	assert.Equal(t, []string{catalog.EssentialsX, catalog.LiteBans, catalog.CoreProtect}, cfg.DetectedPlugins)
}

func TestParseConfig_GroupManager(t *testing.T) {
	cfg, err := ParseConfig(groupManagerYAML)
	require.NoError(t, err)

	assert.Equal(t, model.DialectGroupManager, cfg.PluginType)
	require.Len(t, cfg.Ranks, 2)

	assert.Equal(t, "Default", cfg.Ranks[0].Name)
	assert.Empty(t, cfg.Ranks[0].Parents)

	mod := cfg.Ranks[1]
	assert.Equal(t, "Moderator", mod.Name)
	assert.Equal(t, []string{"essentials.kick", "-essentials.fly"}, mod.Permissions)
	assert.Equal(t, []string{"default"}, mod.Parents)
	assert.Equal(t, "&9", mod.Color)
	assert.Greater(t, mod.Weight, cfg.Ranks[0].Weight)
}

func TestParseConfig_PermissionsEx(t *testing.T) {
	cfg, err := ParseConfig(permissionsExYAML)
	require.NoError(t, err)

	assert.Equal(t, model.DialectPermissionsEx, cfg.PluginType)
	require.Len(t, cfg.Ranks, 2)

	vip := cfg.Ranks[1]
	assert.Equal(t, "vip", vip.Name)
	assert.Equal(t, "&a[VIP] ", vip.Prefix)
	assert.Equal(t, "&a", vip.Color)
	assert.Equal(t, []string{"default"}, vip.Parents)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig("- a\n- b\n")
	assert.ErrorIs(t, err, UnrecognizedFormatError)

	_, err = ParseConfig("groups: [unclosed\n")
	assert.ErrorIs(t, err, UnrecognizedFormatError)

	_, err = ParseConfig(`{"groups": []}`)
	assert.ErrorIs(t, err, NoRanksError)

	_, err = ParseConfig(`{"groups": [{"name": ""}]}`)
	assert.ErrorIs(t, err, NoRanksError)
}

func TestParseFile(t *testing.T) {
	for _, name := range []string{"groups.yml", "permissions.YAML", "export.json"} {
		assert.True(t, SupportedFile(name), name)
	}
	for _, name := range []string{"groups.txt", "groups", "groups.yml.bak"} {
		assert.False(t, SupportedFile(name), name)
	}

	_, err := ParseFile("groups.txt", groupManagerYAML)
	assert.ErrorIs(t, err, UnsupportedExtensionError)

	cfg, err := ParseFile("groups.yml", groupManagerYAML)
	require.NoError(t, err)
	assert.Equal(t, model.DialectGroupManager, cfg.PluginType)
}

func TestDetectPluginsFromPermissions(t *testing.T) {
	got := DetectPluginsFromPermissions([]string{
		"essentials.fly",
		"Essentials.Home",
		"-worldguard.region.bypass",
		"!luckperms.user.info",
		"permissions.manage",
		"custom.node",
		"*",
	})
	assert.Equal(t, []string{catalog.EssentialsX, catalog.WorldGuard, catalog.LuckPerms, catalog.PermissionsEx}, got)

	assert.Empty(t, DetectPluginsFromPermissions(nil))
}

func TestMetaValue(t *testing.T) {
	tests := map[string]string{
		"prefix.100.&c[Admin.Team] ": "&c[Admin.Team] ",
		"prefix.5.[VIP]":             "[VIP]",
		"prefix.10.":                 "",
		"prefix.high.[Owner]":        "[Owner]",
		"prefix.[Member]":            "[Member]",
		"prefix":                     "prefix",
	}
	for in, want := range tests {
		assert.Equal(t, want, metaValue(in), in)
	}
}

func TestExtractColor(t *testing.T) {
	tests := map[string]string{
		"&c[Admin] ":       "&c",
		"§A[VIP]":          "&a",
		"[Plain]":          DefaultColor,
		"":                 DefaultColor,
		"&#FF5555[Owner]":  "#FF5555",
		"<#00ff00>[Elite]": "#00ff00",
		"&l&6[Gold]":       "&l",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExtractColor(in), in)
	}
}

func TestConvertToRanks(t *testing.T) {
	parsed := []model.ParsedRank{
		{Name: "Admin", Weight: 100, Prefix: "&c[Admin] ", Permissions: []string{"essentials.ban"}},
		{Name: "VIP+", Weight: 20, DisplayName: "VIP Plus"},
		{Name: "default", Weight: 0},
	}

	ranks := ConvertToRanks(parsed)
	require.Len(t, ranks, 3)

	assert.Equal(t, "default", ranks[0].Name)
	assert.Equal(t, model.LevelPlayer, ranks[0].Level)
	assert.Equal(t, DefaultColor, ranks[0].PrefixColor)
	assert.Equal(t, "default", ranks[0].DisplayName)

	assert.Equal(t, "vip_plus", ranks[1].Name)
	assert.Equal(t, "VIP Plus", ranks[1].DisplayName)
	assert.Equal(t, model.LevelVIPPlus, ranks[1].Level)

	assert.Equal(t, "admin", ranks[2].Name)
	assert.Equal(t, "&c", ranks[2].PrefixColor)
	assert.Equal(t, model.LevelAdmin, ranks[2].Level)
	assert.Equal(t, []string{"essentials.ban"}, ranks[2].Permissions)

	ids := make(map[string]bool)
	for i, r := range ranks {
		assert.Equal(t, i, r.Order)
		assert.Equal(t, " ", r.Separator)
		assert.NotEmpty(t, r.Id)
		assert.False(t, ids[r.Id])
		ids[r.Id] = true
	}

	// The input is not modified.
	assert.Equal(t, "Admin", parsed[0].Name)
	assert.Empty(t, ConvertToRanks(nil))
}
