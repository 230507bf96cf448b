package classifier

import (
	"strings"

	"permission-wizard/internal/model"
)

type levelRule struct {
	level    model.RankLevel
	keywords []string
}

// Evaluated in order, first match wins. Plus variants must come before their
// plain counterparts since "vip" is a substring of "vip+".
var levelRules = []levelRule{
	{model.LevelOwner, []string{"owner"}},
	{model.LevelAdmin, []string{"admin"}},
	{model.LevelMod, []string{"mod", "moderator"}},
	{model.LevelHelper, []string{"helper", "trial"}},
	{model.LevelElite, []string{"elite", "legendary"}},
	{model.LevelMVPPlus, []string{"mvp+", "mvpplus", "mvp_plus"}},
	{model.LevelMVP, []string{"mvp"}},
	{model.LevelVIPPlus, []string{"vip+", "vipplus", "vip_plus"}},
	{model.LevelVIP, []string{"vip", "donor"}},
	{model.LevelPlayer, []string{"default", "member", "player"}},
}

// InferLevelFromName maps a rank name to a level by ordered substring tests.
// Unmatched names are players.
func InferLevelFromName(name string) model.RankLevel {
	level, _ := matchLevel(name)
	return level
}

func matchLevel(text string) (model.RankLevel, bool) {
	lower := strings.ToLower(text)
	for _, rule := range levelRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.level, true
			}
		}
	}
	return model.LevelPlayer, false
}
