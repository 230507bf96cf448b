package generator

import (
	"fmt"
	"strings"
)

// Every dialect creates all groups first, then grants permissions, then wires
// parents and finally sets prefixes, since most plugins need the group to
// exist before anything else can reference it.

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func header(b *strings.Builder, plugin string, ranks []RankPermissions) {
	fmt.Fprintf(b, "# %s setup for %d rank(s)\n", plugin, len(ranks))
	b.WriteString("# Run these from the server console in order.\n")
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n# %s\n", title)
}

func luckPermsCommands(ranks []RankPermissions) string {
	var b strings.Builder
	header(&b, "LuckPerms", ranks)
	if len(ranks) == 0 {
		return b.String()
	}

	section(&b, "Create groups")
	for _, rp := range ranks {
		fmt.Fprintf(&b, "/lp creategroup %s\n", rp.Rank.Name)
		fmt.Fprintf(&b, "/lp group %s setweight %d\n", rp.Rank.Name, weight(rp.Rank))
		if rp.Rank.DisplayName != "" {
			fmt.Fprintf(&b, "/lp group %s setdisplayname %s\n", rp.Rank.Name, quote(rp.Rank.DisplayName))
		}
	}

	section(&b, "Permissions")
	for _, rp := range ranks {
		for _, p := range rp.Permissions {
			value := "true"
			if strings.HasPrefix(p, "-") {
				p, value = p[1:], "false"
			}
			fmt.Fprintf(&b, "/lp group %s permission set %s %s\n", rp.Rank.Name, p, value)
		}
	}

	section(&b, "Inheritance")
	for _, rp := range ranks {
		if rp.Parent != "" {
			fmt.Fprintf(&b, "/lp group %s parent add %s\n", rp.Rank.Name, rp.Parent)
		}
	}

	section(&b, "Prefixes")
	for _, rp := range ranks {
		if prefix := RenderPrefix(rp.Rank); prefix != "" {
			fmt.Fprintf(&b, "/lp group %s meta setprefix %d %s\n", rp.Rank.Name, weight(rp.Rank), quote(prefix))
		}
	}
	return b.String()
}

func groupManagerCommands(ranks []RankPermissions) string {
	var b strings.Builder
	header(&b, "GroupManager", ranks)
	if len(ranks) == 0 {
		return b.String()
	}

	section(&b, "Create groups")
	for _, rp := range ranks {
		fmt.Fprintf(&b, "/mangadd %s\n", rp.Rank.Name)
	}

	section(&b, "Permissions")
	for _, rp := range ranks {
		for _, p := range rp.Permissions {
			fmt.Fprintf(&b, "/mangaddp %s %s\n", rp.Rank.Name, p)
		}
	}

	section(&b, "Inheritance")
	for _, rp := range ranks {
		if rp.Parent != "" {
			fmt.Fprintf(&b, "/mangaddi %s %s\n", rp.Rank.Name, rp.Parent)
		}
	}

	section(&b, "Prefixes")
	for _, rp := range ranks {
		if prefix := RenderPrefix(rp.Rank); prefix != "" {
			fmt.Fprintf(&b, "/mangaddv %s prefix %s\n", rp.Rank.Name, quote(prefix))
		}
	}
	return b.String()
}

func permissionsExCommands(ranks []RankPermissions) string {
	var b strings.Builder
	header(&b, "PermissionsEx", ranks)
	if len(ranks) == 0 {
		return b.String()
	}

	section(&b, "Create groups")
	for _, rp := range ranks {
		fmt.Fprintf(&b, "/pex group %s create\n", rp.Rank.Name)
	}

	section(&b, "Permissions")
	for _, rp := range ranks {
		for _, p := range rp.Permissions {
			fmt.Fprintf(&b, "/pex group %s add %s\n", rp.Rank.Name, p)
		}
	}

	section(&b, "Inheritance")
	for _, rp := range ranks {
		if rp.Parent != "" {
			fmt.Fprintf(&b, "/pex group %s parents set %s\n", rp.Rank.Name, rp.Parent)
		}
	}

	section(&b, "Prefixes")
	for _, rp := range ranks {
		if prefix := RenderPrefix(rp.Rank); prefix != "" {
			fmt.Fprintf(&b, "/pex group %s prefix %s\n", rp.Rank.Name, quote(prefix))
		}
	}
	return b.String()
}
