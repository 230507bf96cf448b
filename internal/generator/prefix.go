package generator

import (
	"regexp"
	"strings"

	"permission-wizard/internal/model"
)

var (
	legacyCodePattern = regexp.MustCompile(`^&[0-9a-fA-Fk-oK-OrR]$`)
	hexPattern        = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	gradientPattern   = regexp.MustCompile(`^gradient:(#[0-9a-fA-F]{6}):(#[0-9a-fA-F]{6})$`)
	markupPattern     = regexp.MustCompile(`[&§][0-9a-zA-Z]|&#[0-9a-fA-F]{6}|<[a-z#][^>]*>`)
)

// RenderPrefix applies the rank's prefix color to its prefix and appends the
// separator. Prefixes that already carry color markup are kept as they are.
func RenderPrefix(rank model.Rank) string {
	prefix := rank.Prefix
	if prefix == "" {
		return ""
	}

	if !markupPattern.MatchString(prefix) {
		color := strings.TrimSpace(rank.PrefixColor)
		switch {
		case legacyCodePattern.MatchString(color):
			prefix = strings.ToLower(color) + prefix
		case hexPattern.MatchString(color):
			prefix = "&" + color + prefix
		case gradientPattern.MatchString(color):
			m := gradientPattern.FindStringSubmatch(color)
			prefix = "<gradient:" + m[1] + ":" + m[2] + ">" + prefix + "</gradient>"
		}
	}

	if rank.Separator != "" && !strings.HasSuffix(prefix, rank.Separator) {
		prefix += rank.Separator
	}
	return prefix
}

// weight is the target-plugin weight of a rank.
func weight(rank model.Rank) int {
	return rank.Order * 10
}
