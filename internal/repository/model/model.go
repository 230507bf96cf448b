package model

import (
	"time"

	domain "permission-wizard/internal/model"
)

// CustomPlugin is a user-defined catalog plugin. Its nodes are ordinary
// catalog rows once loaded.
type CustomPlugin struct {
	Id          string                  `bson:"_id" json:"id"`
	Name        string                  `bson:"name" json:"name"`
	Description string                  `bson:"description" json:"description"`
	Category    string                  `bson:"category" json:"category"`
	Permissions []domain.PermissionNode `bson:"permissions" json:"permissions"`
	CreatedAt   time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time               `bson:"updatedAt" json:"updatedAt"`
}

func (p *CustomPlugin) ToPlugin() domain.Plugin {
	perms := make([]domain.PermissionNode, len(p.Permissions))
	for i, n := range p.Permissions {
		n.PluginId = p.Id
		perms[i] = n
	}

	return domain.Plugin{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Custom:      true,
		Permissions: perms,
	}
}

func CustomPluginsToPlugins(plugins []*CustomPlugin) []domain.Plugin {
	out := make([]domain.Plugin, len(plugins))
	for i, p := range plugins {
		out[i] = p.ToPlugin()
	}
	return out
}
