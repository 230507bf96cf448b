package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"permission-wizard/internal/config"
	"permission-wizard/internal/generator"
	"permission-wizard/internal/repository/model"
)

const topic = "permission-wizard"

const (
	customPluginUpdateType = "permissionwizard.CustomPluginUpdate"
	configExportedType     = "permissionwizard.ConfigExported"
)

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

func (k *kafkaNotifier) CustomPluginUpdate(ctx context.Context, pluginId string, plugin *model.CustomPlugin, changeType ChangeType) error {
	msg, err := customPluginUpdateMessage(pluginId, plugin, changeType)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	if err := k.publishMessage(ctx, customPluginUpdateType, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (k *kafkaNotifier) ConfigExported(ctx context.Context, out *generator.Output, rankCount int) error {
	msg, err := configExportedMessage(out, rankCount)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	if err := k.publishMessage(ctx, configExportedType, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func customPluginUpdateMessage(pluginId string, plugin *model.CustomPlugin, changeType ChangeType) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"pluginId":   pluginId,
		"changeType": string(changeType),
	}

	if plugin != nil {
		nodes := make([]interface{}, len(plugin.Permissions))
		for i, n := range plugin.Permissions {
			nodes[i] = map[string]interface{}{
				"node":            n.Node,
				"recommendedRank": string(n.RecommendedRank),
				"riskLevel":       string(n.RiskLevel),
				"isDefault":       n.IsDefault,
			}
		}
		fields["plugin"] = map[string]interface{}{
			"name":        plugin.Name,
			"description": plugin.Description,
			"category":    plugin.Category,
			"permissions": nodes,
		}
	}

	return structpb.NewStruct(fields)
}

func configExportedMessage(out *generator.Output, rankCount int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"format":     string(out.Format),
		"dialect":    string(out.Dialect),
		"filename":   out.Filename,
		"rankCount":  rankCount,
		"advisories": len(out.Advisories),
	})
}

func (k *kafkaNotifier) publishMessage(ctx context.Context, messageType string, message proto.Message) error {
	bytes, err := proto.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Value: bytes,
		Headers: []kafka.Header{
			{Key: "X-Proto-Type", Value: []byte(message.ProtoReflect().Descriptor().FullName())},
			{Key: "X-Message-Type", Value: []byte(messageType)},
		},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
