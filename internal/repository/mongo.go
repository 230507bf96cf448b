package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"permission-wizard/internal/config"
	"permission-wizard/internal/repository/model"
)

const (
	databaseName               = "permission-wizard"
	customPluginCollectionName = "customPlugins"
)

type mongoRepository struct {
	database *mongo.Database

	customPluginCollection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	database := client.Database(databaseName)
	repo := &mongoRepository{
		database:               database,
		customPluginCollection: database.Collection(customPluginCollectionName),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("failed to disconnect from mongo", "error", err)
		}
	}()

	return repo, nil
}

func (m *mongoRepository) GetCustomPlugins(ctx context.Context) ([]*model.CustomPlugin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := m.customPluginCollection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var mongoResult []model.CustomPlugin
	err = cursor.All(ctx, &mongoResult)

	slice := make([]*model.CustomPlugin, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, err
}

// GetCustomPlugin returns mongo.ErrNoDocuments if the plugin does not exist.
func (m *mongoRepository) GetCustomPlugin(ctx context.Context, pluginId string) (*model.CustomPlugin, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var plugin model.CustomPlugin
	if err := m.customPluginCollection.FindOne(ctx, bson.M{"_id": pluginId}).Decode(&plugin); err != nil {
		return nil, err
	}
	return &plugin, nil
}

func (m *mongoRepository) CreateCustomPlugin(ctx context.Context, plugin *model.CustomPlugin) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	plugin.CreatedAt = now
	plugin.UpdatedAt = now

	_, err := m.customPluginCollection.InsertOne(ctx, plugin)
	return err
}

func (m *mongoRepository) UpdateCustomPlugin(ctx context.Context, plugin *model.CustomPlugin) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	plugin.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result := m.customPluginCollection.FindOneAndReplace(ctx, bson.M{"_id": plugin.Id}, plugin)
	return result.Err()
}

// DeleteCustomPlugin returns mongo.ErrNoDocuments if nothing was deleted.
func (m *mongoRepository) DeleteCustomPlugin(ctx context.Context, pluginId string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := m.customPluginCollection.DeleteOne(ctx, bson.M{"_id": pluginId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
