package catalog

import (
	"errors"
	"fmt"

	"permission-wizard/internal/model"
)

// Template is the starting point offered for a server archetype.
type Template struct {
	ServerType         model.ServerType `json:"serverType"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	RecommendedPlugins []string         `json:"recommendedPlugins"`
	Ranks              []RankTemplate   `json:"ranks"`
}

type RankTemplate struct {
	DisplayName string          `json:"displayName"`
	Color       string          `json:"color"`
	Level       model.RankLevel `json:"level"`
}

var baseRanks = []RankTemplate{
	{DisplayName: "Member", Color: "&7", Level: model.LevelPlayer},
	{DisplayName: "VIP", Color: "&a", Level: model.LevelVIP},
	{DisplayName: "VIP+", Color: "&2", Level: model.LevelVIPPlus},
	{DisplayName: "MVP", Color: "&b", Level: model.LevelMVP},
	{DisplayName: "Helper", Color: "&e", Level: model.LevelHelper},
	{DisplayName: "Moderator", Color: "&9", Level: model.LevelMod},
	{DisplayName: "Admin", Color: "&c", Level: model.LevelAdmin},
	{DisplayName: "Owner", Color: "&4", Level: model.LevelOwner},
}

var templates = map[model.ServerType]Template{
	model.ServerSurvival: {
		Name: "Survival", Description: "Classic survival with homes, claims and an economy",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, Vault, GriefPrevention, CoreProtect, ChestShop},
	},
	model.ServerFactions: {
		Name: "Factions", Description: "PvP focused survival with raiding",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, Vault, WorldGuard, CoreProtect, LiteBans},
	},
	model.ServerSkyblock: {
		Name: "Skyblock", Description: "Island survival",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, Vault, WorldGuard, Multiverse},
	},
	model.ServerCreative: {
		Name: "Creative", Description: "Building with plots and WorldEdit",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, WorldEdit, WorldGuard, Multiverse},
	},
	model.ServerMinigames: {
		Name: "Minigames", Description: "Lobby with game servers",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, WorldGuard, Citizens, Multiverse},
	},
	model.ServerPrison: {
		Name: "Prison", Description: "Mine, rank up, escape",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, Vault, WorldGuard, ChestShop, McMMO},
	},
	model.ServerSMP: {
		Name: "SMP", Description: "Small community survival",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, CoreProtect, DiscordSRV, Towny},
	},
	model.ServerNetwork: {
		Name: "Network", Description: "Multi-server network hub",
		RecommendedPlugins: []string{LuckPerms, EssentialsX, LiteBans, DiscordSRV, SkinsRestorer},
		Ranks: append(append([]RankTemplate{}, baseRanks[:4]...),
			append([]RankTemplate{{DisplayName: "Elite", Color: "&6", Level: model.LevelElite}}, baseRanks[4:]...)...),
	},
}

var UnknownServerTypeError = errors.New("unknown server type")

// Every recommended plugin must be in the bundled catalog.
func init() {
	for _, t := range templates {
		for _, id := range t.RecommendedPlugins {
			defaultCatalog.MustPlugin(id)
		}
	}
}

func TemplateFor(serverType model.ServerType) (Template, error) {
	t, ok := templates[serverType]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", UnknownServerTypeError, serverType)
	}
	t.ServerType = serverType
	if t.Ranks == nil {
		t.Ranks = baseRanks
	}
	t.Ranks = append([]RankTemplate(nil), t.Ranks...)
	t.RecommendedPlugins = append([]string(nil), t.RecommendedPlugins...)
	return t, nil
}

// Session builds a fresh wizard session from the template.
func (t Template) Session() model.Session {
	s := model.Session{
		ServerType:       t.ServerType,
		SelectedPlugins:  append([]string(nil), t.RecommendedPlugins...),
		PermissionPlugin: model.DialectLuckPerms,
	}
	for _, rt := range t.Ranks {
		r := model.NewRank(rt.DisplayName, rt.Level)
		r.PrefixColor = rt.Color
		s = s.AddRank(r)
	}
	return s
}
