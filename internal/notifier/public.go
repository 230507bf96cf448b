package notifier

import (
	"context"

	"permission-wizard/internal/generator"
	"permission-wizard/internal/repository/model"
)

type ChangeType string

const (
	ChangeCreate ChangeType = "CREATE"
	ChangeModify ChangeType = "MODIFY"
	ChangeDelete ChangeType = "DELETE"
)

type Notifier interface {
	// CustomPluginUpdate announces a change to the custom catalog. plugin may
	// be nil for deletions, in which case only pluginId is sent.
	CustomPluginUpdate(ctx context.Context, pluginId string, plugin *model.CustomPlugin, changeType ChangeType) error
	ConfigExported(ctx context.Context, out *generator.Output, rankCount int) error
}
