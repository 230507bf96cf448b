package app

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"permission-wizard/internal/ai"
	"permission-wizard/internal/cache"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/config"
	"permission-wizard/internal/metrics"
	"permission-wizard/internal/notifier"
	"permission-wizard/internal/repository"
	"permission-wizard/internal/service"
)

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, repoCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	repo, err := repository.NewMongoRepository(delayedCtx, logger, delayedWg, cfg.MongoDB)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	notif := notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka)

	var providerCache cache.Cache
	if cfg.Redis.Addr != "" {
		providerCache = cache.NewRedisCache(delayedCtx, delayedWg, logger, cfg.Redis)
	}

	m := metrics.New()
	m.Serve(ctx, wg, logger, cfg.MetricsPort)

	fallback := newClassifier(cfg, logger, providerCache, m)

	service.RunServices(ctx, logger, wg, cfg, service.Dependencies{
		Repo:       repo,
		Notifier:   notif,
		Metrics:    m,
		Classifier: fallback,
		Lookup:     fallback,
		Debouncer:  classifier.NewDebouncer(fallback, cfg.ClassifyQuietPeriod),
	})

	<-ctx.Done()
	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	repoCancel()
	delayedWg.Wait()
}

// newClassifier wraps the configured AI provider, if any, with the local
// heuristic and catalog lookup.
func newClassifier(cfg *config.Config, logger *zap.SugaredLogger, c cache.Cache, m *metrics.Metrics) *classifier.Fallback {
	localLookup := classifier.CatalogLookup{Catalog: catalog.Default()}
	opts := []classifier.FallbackOption{
		classifier.WithTimeout(cfg.AI.Timeout),
		classifier.WithFallbackHook(m.ObserveFallback),
	}

	provider, err := ai.New(cfg.AI, logger, c)
	switch {
	case errors.Is(err, ai.NotConfiguredError):
		logger.Infow("no ai provider configured, using local rank classification")
		return classifier.NewFallback(logger, nil, nil, localLookup, opts...)
	case err != nil:
		logger.Errorw("failed to create ai provider, using local rank classification", "error", err)
		return classifier.NewFallback(logger, nil, nil, localLookup, opts...)
	}

	logger.Infow("ai rank classification enabled", "provider", cfg.AI.Provider, "webSearch", cfg.AI.EnableWebSearch)
	return classifier.NewFallback(logger, provider, provider, localLookup, opts...)
}
