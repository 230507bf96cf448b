package classifier

import (
	"context"
	"fmt"
	"strings"

	"permission-wizard/internal/catalog"
	"permission-wizard/internal/model"
)

var (
	staffKeywords  = []string{"staff", "moderat", "manage", "ban", "kick", "mute", "enforce", "builder"}
	donorKeywords  = []string{"donat", "premium", "supporter", "purchase", "store", "paid", "patron", "booster"}
	playerKeywords = []string{"new", "regular", "guest", "everyone", "starter", "newcomer"}
)

// Local is the heuristic classifier. It never fails and has no side effects.
type Local struct{}

func (Local) Classify(_ context.Context, in Input) (Result, error) {
	return ClassifyLocal(in), nil
}

// ClassifyLocal scores the name against the level list, falls back to
// keywords in the description and finally to the target audience.
func ClassifyLocal(in Input) Result {
	audienceLevel, hasAudience := audienceDefault(in.TargetAudience)

	if level, ok := matchLevel(in.Name); ok {
		return withAudience(level, fmt.Sprintf("name %q matches the %s rank pattern", in.Name, level), in.TargetAudience, hasAudience)
	}

	// Player words are common in any description and must not outrank the
	// staff and donor keywords below.
	if level, ok := matchLevel(in.Description); ok && level != model.LevelPlayer {
		return withAudience(level, fmt.Sprintf("description mentions a %s rank", level), in.TargetAudience, hasAudience)
	}

	if level, kw, ok := keywordLevel(in.Name + " " + in.Description); ok {
		return withAudience(level, fmt.Sprintf("keyword %q suggests a %s rank", kw, level), in.TargetAudience, hasAudience)
	}

	if hasAudience {
		return Result{
			Level:      audienceLevel,
			Confidence: ConfidenceMedium,
			Reason:     fmt.Sprintf("based on the %s target audience", in.TargetAudience),
		}
	}

	return Result{
		Level:      model.LevelPlayer,
		Confidence: ConfidenceLow,
		Reason:     "no matching keywords, defaulting to player",
	}
}

func withAudience(level model.RankLevel, reason string, audience Audience, hasAudience bool) Result {
	if !hasAudience {
		return Result{Level: level, Confidence: ConfidenceMedium, Reason: reason}
	}
	if tierOf(level) == audience {
		return Result{Level: level, Confidence: ConfidenceHigh, Reason: reason + fmt.Sprintf(" and fits the %s audience", audience)}
	}
	return Result{Level: level, Confidence: ConfidenceMedium, Reason: reason + fmt.Sprintf(" but the %s audience disagrees", audience)}
}

func keywordLevel(text string) (model.RankLevel, string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range staffKeywords {
		if strings.Contains(lower, kw) {
			return model.LevelMod, kw, true
		}
	}
	for _, kw := range donorKeywords {
		if strings.Contains(lower, kw) {
			return model.LevelVIP, kw, true
		}
	}
	for _, kw := range playerKeywords {
		if strings.Contains(lower, kw) {
			return model.LevelPlayer, kw, true
		}
	}
	return "", "", false
}

func audienceDefault(a Audience) (model.RankLevel, bool) {
	switch a {
	case AudiencePlayer:
		return model.LevelPlayer, true
	case AudienceDonor:
		return model.LevelVIP, true
	case AudienceStaff:
		return model.LevelMod, true
	}
	return "", false
}

func tierOf(level model.RankLevel) Audience {
	switch {
	case level == model.LevelPlayer:
		return AudiencePlayer
	case level.AtMost(model.LevelElite):
		return AudienceDonor
	default:
		return AudienceStaff
	}
}

// CatalogLookup answers permission lookups from a catalog.
type CatalogLookup struct {
	Catalog *catalog.Catalog
}

func (c CatalogLookup) LookupPluginPermissions(_ context.Context, pluginName string) (LookupResult, error) {
	needle := normalizePluginName(pluginName)
	for _, p := range c.Catalog.Plugins() {
		if normalizePluginName(p.Id) == needle || normalizePluginName(p.Name) == needle {
			return LookupResult{PluginName: p.Name, Found: true, Permissions: p.Permissions, Source: "catalog"}, nil
		}
	}
	return LookupResult{PluginName: pluginName, Found: false, Permissions: []model.PermissionNode{}, Source: "catalog"}, nil
}

func normalizePluginName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name)
}
