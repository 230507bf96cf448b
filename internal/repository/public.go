package repository

import (
	"context"

	"permission-wizard/internal/repository/model"
)

type Repository interface {
	GetCustomPlugins(ctx context.Context) ([]*model.CustomPlugin, error)
	GetCustomPlugin(ctx context.Context, pluginId string) (*model.CustomPlugin, error)
	CreateCustomPlugin(ctx context.Context, plugin *model.CustomPlugin) error
	UpdateCustomPlugin(ctx context.Context, plugin *model.CustomPlugin) error
	DeleteCustomPlugin(ctx context.Context, pluginId string) error
}
