package parser

import (
	"strings"

	"permission-wizard/internal/catalog"
)

type prefixRule struct {
	prefix   string
	pluginId string
}

// Checked in order, first match wins.
var pluginPrefixes = []prefixRule{
	{"essentials.", catalog.EssentialsX},
	{"luckperms.", catalog.LuckPerms},
	{"groupmanager.", catalog.GroupManager},
	{"permissions.", catalog.PermissionsEx},
	{"worldguard.", catalog.WorldGuard},
	{"worldedit.", catalog.WorldEdit},
	{"vault.", catalog.Vault},
	{"coreprotect.", catalog.CoreProtect},
	{"griefprevention.", catalog.GriefPrevention},
	{"multiverse.", catalog.Multiverse},
	{"mcmmo.", catalog.McMMO},
	{"chestshop.", catalog.ChestShop},
	{"citizens.", catalog.Citizens},
	{"litebans.", catalog.LiteBans},
	{"discordsrv.", catalog.DiscordSRV},
	{"towny.", catalog.Towny},
	{"skinsrestorer.", catalog.SkinsRestorer},
}

// DetectPluginsFromPermissions returns the plugins owning at least one of the
// permission nodes, in order of first appearance. Negated nodes count too.
func DetectPluginsFromPermissions(permissions []string) []string {
	seen := make(map[string]bool)
	detected := make([]string, 0)
	for _, perm := range permissions {
		perm = strings.TrimLeft(strings.ToLower(strings.TrimSpace(perm)), "-!")
		for _, rule := range pluginPrefixes {
			if strings.HasPrefix(perm, rule.prefix) {
				if !seen[rule.pluginId] {
					seen[rule.pluginId] = true
					detected = append(detected, rule.pluginId)
				}
				break
			}
		}
	}
	return detected
}
