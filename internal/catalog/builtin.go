package catalog

import "permission-wizard/internal/model"

const (
	EssentialsX     = "essentialsx"
	LuckPerms       = "luckperms"
	GroupManager    = "groupmanager"
	PermissionsEx   = "permissionsex"
	WorldGuard      = "worldguard"
	WorldEdit       = "worldedit"
	Vault           = "vault"
	CoreProtect     = "coreprotect"
	GriefPrevention = "griefprevention"
	Multiverse      = "multiverse"
	McMMO           = "mcmmo"
	ChestShop       = "chestshop"
	Citizens        = "citizens"
	LiteBans        = "litebans"
	DiscordSRV      = "discordsrv"
	Towny           = "towny"
	SkinsRestorer   = "skinsrestorer"
)

// PermissionPluginDialect maps a permission-management plugin id to the
// config dialect it reads.
func PermissionPluginDialect(pluginId string) (model.Dialect, bool) {
	switch pluginId {
	case LuckPerms:
		return model.DialectLuckPerms, true
	case GroupManager:
		return model.DialectGroupManager, true
	case PermissionsEx:
		return model.DialectPermissionsEx, true
	}
	return "", false
}

type nodeOpt func(*model.PermissionNode)

func on(types ...model.ServerType) nodeOpt {
	return func(n *model.PermissionNode) { n.ServerTypes = types }
}

func isDefault(n *model.PermissionNode) { n.IsDefault = true }

func perm(node string, desc string, rank model.RankLevel, risk model.RiskLevel, opts ...nodeOpt) model.PermissionNode {
	n := model.PermissionNode{
		Node:            node,
		Description:     desc,
		RecommendedRank: rank,
		RiskLevel:       risk,
		ServerTypes:     []model.ServerType{model.ServerUniversal},
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

var survivalLike = on(model.ServerSurvival, model.ServerSMP, model.ServerSkyblock, model.ServerFactions, model.ServerPrison)

func builtinPlugins() []model.Plugin {
	return []model.Plugin{
		{
			Id: EssentialsX, Name: "EssentialsX", Category: "essentials",
			Description: "Core player and moderation commands",
			Permissions: []model.PermissionNode{
				perm("essentials.help", "Use /help", model.LevelPlayer, model.RiskSafe, isDefault),
				perm("essentials.spawn", "Teleport to spawn", model.LevelPlayer, model.RiskSafe, isDefault),
				perm("essentials.msg", "Send private messages", model.LevelPlayer, model.RiskSafe, isDefault),
				perm("essentials.home", "Teleport home", model.LevelPlayer, model.RiskSafe, survivalLike),
				perm("essentials.sethome", "Set a home", model.LevelPlayer, model.RiskSafe, survivalLike),
				perm("essentials.tpa", "Request a teleport", model.LevelPlayer, model.RiskSafe),
				perm("essentials.tpaccept", "Accept a teleport request", model.LevelPlayer, model.RiskSafe),
				perm("essentials.back", "Return to previous location", model.LevelVIP, model.RiskSafe),
				perm("essentials.hat", "Wear the held item", model.LevelVIP, model.RiskSafe),
				perm("essentials.fly", "Toggle flight", model.LevelVIP, model.RiskModerate,
					on(model.ServerSMP, model.ServerSkyblock, model.ServerCreative, model.ServerNetwork)),
				perm("essentials.nick", "Change nickname", model.LevelVIPPlus, model.RiskSafe),
				perm("essentials.chat.color", "Use colors in chat", model.LevelVIPPlus, model.RiskSafe),
				perm("essentials.workbench", "Open a portable crafting table", model.LevelMVP, model.RiskSafe),
				perm("essentials.enderchest", "Open the ender chest anywhere", model.LevelMVPPlus, model.RiskSafe),
				perm("essentials.feed", "Refill hunger", model.LevelElite, model.RiskModerate, survivalLike),
				perm("essentials.heal", "Restore health", model.LevelElite, model.RiskModerate, survivalLike),
				perm("essentials.kick", "Kick players", model.LevelHelper, model.RiskModerate),
				perm("essentials.mute", "Mute players", model.LevelHelper, model.RiskModerate),
				perm("essentials.tempban", "Temporarily ban players", model.LevelMod, model.RiskModerate),
				perm("essentials.ban", "Ban players", model.LevelMod, model.RiskDangerous),
				perm("essentials.invsee", "Inspect inventories", model.LevelMod, model.RiskModerate),
				perm("essentials.gamemode", "Change game mode", model.LevelAdmin, model.RiskDangerous),
				perm("essentials.give", "Spawn items", model.LevelAdmin, model.RiskDangerous),
				perm("essentials.*", "Every Essentials command", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: LuckPerms, Name: "LuckPerms", Category: "permissions",
			Description: "Permission management",
			Permissions: []model.PermissionNode{
				perm("luckperms.user.info", "View user permission info", model.LevelHelper, model.RiskSafe),
				perm("luckperms.user.parent.add", "Add users to groups", model.LevelAdmin, model.RiskDangerous),
				perm("luckperms.group.*", "Manage groups", model.LevelOwner, model.RiskCritical),
				perm("luckperms.*", "Full LuckPerms access", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: GroupManager, Name: "GroupManager", Category: "permissions",
			Description: "Legacy permission management",
			Permissions: []model.PermissionNode{
				perm("groupmanager.manwhois", "Inspect user groups", model.LevelHelper, model.RiskSafe),
				perm("groupmanager.manuadd", "Move users between groups", model.LevelAdmin, model.RiskDangerous),
				perm("groupmanager.*", "Full GroupManager access", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: PermissionsEx, Name: "PermissionsEx", Category: "permissions",
			Description: "Legacy permission management",
			Permissions: []model.PermissionNode{
				perm("permissions.user.inherit", "Move users between groups", model.LevelAdmin, model.RiskDangerous),
				perm("permissions.*", "Full PermissionsEx access", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: WorldGuard, Name: "WorldGuard", Category: "protection",
			Description: "Region protection",
			Permissions: []model.PermissionNode{
				perm("worldguard.region.info", "Inspect regions", model.LevelHelper, model.RiskSafe),
				perm("worldguard.region.define", "Define regions", model.LevelMod, model.RiskModerate),
				perm("worldguard.region.bypass.*", "Bypass region flags", model.LevelAdmin, model.RiskDangerous),
				perm("worldguard.*", "Full WorldGuard access", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: WorldEdit, Name: "WorldEdit", Category: "building",
			Description: "In-game map editing",
			Permissions: []model.PermissionNode{
				perm("worldedit.wand", "Get the selection wand", model.LevelPlayer, model.RiskModerate, on(model.ServerCreative)),
				perm("worldedit.selection.*", "Make selections", model.LevelMod, model.RiskModerate),
				perm("worldedit.region.*", "Edit selected regions", model.LevelAdmin, model.RiskDangerous),
				perm("worldedit.*", "Full WorldEdit access", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: Vault, Name: "Vault", Category: "economy",
			Description: "Economy and permission bridge",
			Permissions: []model.PermissionNode{
				perm("vault.admin", "Vault administration", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: CoreProtect, Name: "CoreProtect", Category: "protection",
			Description: "Block logging and rollback",
			Permissions: []model.PermissionNode{
				perm("coreprotect.inspect", "Inspect block history", model.LevelHelper, model.RiskSafe),
				perm("coreprotect.lookup", "Search block history", model.LevelMod, model.RiskModerate),
				perm("coreprotect.rollback", "Roll back changes", model.LevelAdmin, model.RiskDangerous),
			},
		},
		{
			Id: GriefPrevention, Name: "GriefPrevention", Category: "protection",
			Description: "Player land claims",
			Permissions: []model.PermissionNode{
				perm("griefprevention.claims", "Create claims", model.LevelPlayer, model.RiskSafe, isDefault, survivalLike),
				perm("griefprevention.adminclaims", "Create admin claims", model.LevelAdmin, model.RiskDangerous, survivalLike),
				perm("griefprevention.ignoreclaims", "Ignore claims", model.LevelAdmin, model.RiskDangerous, survivalLike),
			},
		},
		{
			Id: Multiverse, Name: "Multiverse-Core", Category: "worlds",
			Description: "Multiple worlds",
			Permissions: []model.PermissionNode{
				perm("multiverse.teleport.self.*", "Teleport between worlds", model.LevelVIP, model.RiskSafe),
				perm("multiverse.core.*", "Manage worlds", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: McMMO, Name: "mcMMO", Category: "gameplay",
			Description: "RPG skills",
			Permissions: []model.PermissionNode{
				perm("mcmmo.skills.*", "Use every skill", model.LevelPlayer, model.RiskSafe, isDefault, survivalLike),
				perm("mcmmo.commands.mcrank", "View skill ranks", model.LevelPlayer, model.RiskSafe, survivalLike),
				perm("mcmmo.commands.addlevels", "Grant skill levels", model.LevelAdmin, model.RiskDangerous, survivalLike),
			},
		},
		{
			Id: ChestShop, Name: "ChestShop", Category: "economy",
			Description: "Sign shops",
			Permissions: []model.PermissionNode{
				perm("chestshop.shop.create", "Create shops", model.LevelPlayer, model.RiskSafe,
					on(model.ServerSurvival, model.ServerSMP, model.ServerPrison, model.ServerFactions)),
				perm("chestshop.admin", "Manage every shop", model.LevelAdmin, model.RiskDangerous),
			},
		},
		{
			Id: Citizens, Name: "Citizens", Category: "gameplay",
			Description: "NPCs",
			Permissions: []model.PermissionNode{
				perm("citizens.npc.create", "Create NPCs", model.LevelAdmin, model.RiskModerate),
				perm("citizens.*", "Full Citizens access", model.LevelOwner, model.RiskCritical),
			},
		},
		{
			Id: LiteBans, Name: "LiteBans", Category: "moderation",
			Description: "Punishments",
			Permissions: []model.PermissionNode{
				perm("litebans.kick", "Kick players", model.LevelHelper, model.RiskModerate),
				perm("litebans.mute", "Mute players", model.LevelHelper, model.RiskModerate),
				perm("litebans.ban", "Ban players", model.LevelMod, model.RiskDangerous),
				perm("litebans.unban", "Lift bans", model.LevelAdmin, model.RiskDangerous),
			},
		},
		{
			Id: DiscordSRV, Name: "DiscordSRV", Category: "chat",
			Description: "Discord bridge",
			Permissions: []model.PermissionNode{
				perm("discordsrv.link", "Link a Discord account", model.LevelPlayer, model.RiskSafe, isDefault),
			},
		},
		{
			Id: Towny, Name: "Towny", Category: "gameplay",
			Description: "Towns and nations",
			Permissions: []model.PermissionNode{
				perm("towny.command.town.*", "Use town commands", model.LevelPlayer, model.RiskSafe, on(model.ServerSurvival, model.ServerSMP)),
				perm("towny.admin", "Administer towns", model.LevelAdmin, model.RiskDangerous, on(model.ServerSurvival, model.ServerSMP)),
			},
		},
		{
			Id: SkinsRestorer, Name: "SkinsRestorer", Category: "cosmetic",
			Description: "Skin changing",
			Permissions: []model.PermissionNode{
				perm("skinsrestorer.command.set", "Change own skin", model.LevelVIP, model.RiskSafe),
			},
		},
	}
}
