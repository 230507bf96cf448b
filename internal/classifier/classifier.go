package classifier

import (
	"context"

	"permission-wizard/internal/model"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Audience is the optional target audience picked for a rank.
type Audience string

const (
	AudiencePlayer Audience = "player"
	AudienceDonor  Audience = "donor"
	AudienceStaff  Audience = "staff"
)

type Input struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	TargetAudience Audience `json:"targetAudience,omitempty"`
}

type Result struct {
	Level      model.RankLevel `json:"level"`
	Confidence Confidence      `json:"confidence"`
	Reason     string          `json:"reason"`
}

// RankClassifier infers the level of a rank being created.
type RankClassifier interface {
	Classify(ctx context.Context, in Input) (Result, error)
}

type LookupResult struct {
	PluginName  string                 `json:"pluginName"`
	Found       bool                   `json:"found"`
	Permissions []model.PermissionNode `json:"permissions"`
	Source      string                 `json:"source"`
}

// PermissionLookup finds the permission nodes of a plugin by name.
type PermissionLookup interface {
	LookupPluginPermissions(ctx context.Context, pluginName string) (LookupResult, error)
}
