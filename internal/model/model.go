package model

import "strings"

// RankLevel is the coarse privilege tier of a rank. Levels are ordered
// ascending, see RankLevels.
type RankLevel string

const (
	LevelPlayer  RankLevel = "player"
	LevelVIP     RankLevel = "vip"
	LevelVIPPlus RankLevel = "vip_plus"
	LevelMVP     RankLevel = "mvp"
	LevelMVPPlus RankLevel = "mvp_plus"
	LevelElite   RankLevel = "elite"
	LevelHelper  RankLevel = "helper"
	LevelMod     RankLevel = "mod"
	LevelAdmin   RankLevel = "admin"
	LevelOwner   RankLevel = "owner"
)

var rankLevels = []RankLevel{
	LevelPlayer, LevelVIP, LevelVIPPlus, LevelMVP, LevelMVPPlus,
	LevelElite, LevelHelper, LevelMod, LevelAdmin, LevelOwner,
}

// RankLevels returns every level from least to most privileged.
func RankLevels() []RankLevel {
	levels := make([]RankLevel, len(rankLevels))
	copy(levels, rankLevels)
	return levels
}

// Index returns the position of the level in privilege order, or -1 if the
// level is unknown.
func (l RankLevel) Index() int {
	for i, level := range rankLevels {
		if level == l {
			return i
		}
	}
	return -1
}

func (l RankLevel) Valid() bool {
	return l.Index() >= 0
}

// AtMost reports whether l grants no more privilege than other.
func (l RankLevel) AtMost(other RankLevel) bool {
	li, oi := l.Index(), other.Index()
	return li >= 0 && oi >= 0 && li <= oi
}

func ParseRankLevel(s string) (RankLevel, bool) {
	level := RankLevel(strings.ToLower(strings.TrimSpace(s)))
	return level, level.Valid()
}

type RiskLevel string

const (
	RiskSafe      RiskLevel = "safe"
	RiskModerate  RiskLevel = "moderate"
	RiskDangerous RiskLevel = "dangerous"
	RiskCritical  RiskLevel = "critical"
)

// ServerType is a server archetype chosen in the first wizard step.
type ServerType string

const (
	ServerSurvival  ServerType = "survival"
	ServerFactions  ServerType = "factions"
	ServerSkyblock  ServerType = "skyblock"
	ServerCreative  ServerType = "creative"
	ServerMinigames ServerType = "minigames"
	ServerPrison    ServerType = "prison"
	ServerSMP       ServerType = "smp"
	ServerNetwork   ServerType = "network"

	// ServerUniversal marks a node as applicable to every archetype.
	ServerUniversal ServerType = "universal"
)

var serverTypes = []ServerType{
	ServerSurvival, ServerFactions, ServerSkyblock, ServerCreative,
	ServerMinigames, ServerPrison, ServerSMP, ServerNetwork,
}

func ServerTypes() []ServerType {
	types := make([]ServerType, len(serverTypes))
	copy(types, serverTypes)
	return types
}

func (s ServerType) Valid() bool {
	for _, t := range serverTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Rank is the canonical, user-editable privilege tier. Larger Order means a
// higher rank; ranks below inherit into ranks above.
type Rank struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Prefix      string    `json:"prefix"`
	PrefixColor string    `json:"prefixColor"`
	Separator   string    `json:"separator"`
	Order       int       `json:"order"`
	Level       RankLevel `json:"level"`

	// Permissions holds raw nodes carried over from an imported config. They
	// are granted to this rank on export in addition to catalog nodes.
	Permissions []string `json:"permissions,omitempty"`
}

func (r Rank) clone() Rank {
	if r.Permissions != nil {
		perms := make([]string, len(r.Permissions))
		copy(perms, r.Permissions)
		r.Permissions = perms
	}
	return r
}

// PermissionNode is a read-only catalog entry.
type PermissionNode struct {
	Id              string       `json:"id" bson:"id"`
	PluginId        string       `json:"pluginId" bson:"pluginId"`
	Node            string       `json:"node" bson:"node"`
	Description     string       `json:"description" bson:"description"`
	RecommendedRank RankLevel    `json:"recommendedRank" bson:"recommendedRank"`
	RiskLevel       RiskLevel    `json:"riskLevel" bson:"riskLevel"`
	ServerTypes     []ServerType `json:"serverTypes" bson:"serverTypes"`
	IsDefault       bool         `json:"isDefault" bson:"isDefault"`
}

// AppliesTo reports whether the node is relevant for the server archetype.
// A node without server types, or tagged universal, applies everywhere.
func (n PermissionNode) AppliesTo(serverType ServerType) bool {
	if len(n.ServerTypes) == 0 {
		return true
	}
	for _, t := range n.ServerTypes {
		if t == ServerUniversal || t == serverType {
			return true
		}
	}
	return false
}

type Plugin struct {
	Id          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Custom      bool             `json:"custom"`
	Permissions []PermissionNode `json:"permissions"`
}

// Dialect identifies a permission plugin configuration schema.
type Dialect string

const (
	DialectLuckPerms     Dialect = "luckperms"
	DialectGroupManager  Dialect = "groupmanager"
	DialectPermissionsEx Dialect = "permissionsex"
)

func Dialects() []Dialect {
	return []Dialect{DialectLuckPerms, DialectGroupManager, DialectPermissionsEx}
}

func (d Dialect) Valid() bool {
	switch d {
	case DialectLuckPerms, DialectGroupManager, DialectPermissionsEx:
		return true
	}
	return false
}

// Format is the kind of output payload the generator produces.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatCommands Format = "commands"
	FormatJSON     Format = "json"
)

func (f Format) Valid() bool {
	switch f {
	case FormatYAML, FormatCommands, FormatJSON:
		return true
	}
	return false
}

// ParsedRank is a rank as read from a source config, before canonicalization.
// Weight is on the source's own scale.
type ParsedRank struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName,omitempty"`
	Prefix      string   `json:"prefix,omitempty"`
	Color       string   `json:"color,omitempty"`
	Weight      int      `json:"weight"`
	Permissions []string `json:"permissions"`
	Parents     []string `json:"parents"`
}

type ParsedConfig struct {
	PluginType      Dialect      `json:"pluginType"`
	Ranks           []ParsedRank `json:"ranks"`
	DetectedPlugins []string     `json:"detectedPlugins"`
}
