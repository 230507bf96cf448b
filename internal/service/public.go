package service

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/config"
	"permission-wizard/internal/metrics"
	"permission-wizard/internal/notifier"
	"permission-wizard/internal/repository"
	"permission-wizard/internal/utils/grpczap"
)

// Dependencies are the collaborators the ConfigService is built from.
type Dependencies struct {
	Repo       repository.Repository
	Notifier   notifier.Notifier
	Metrics    *metrics.Metrics
	Classifier classifier.RankClassifier
	Lookup     classifier.PermissionLookup
	Debouncer  *classifier.Debouncer
}

func NewServer(logger *zap.SugaredLogger, cfg *config.Config, deps Dependencies) *grpc.Server {
	opts := []logging.Option{
		logging.WithLogOnEvents(logging.StartCall, logging.FinishCall),
	}

	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		logging.UnaryServerInterceptor(grpczap.InterceptorLogger(logger.Desugar()), opts...),
	))

	if cfg.Development {
		reflection.Register(s)
	}

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthSrv)

	RegisterConfigServiceServer(s, newConfigService(logger, deps.Repo, deps.Notifier, deps.Metrics,
		deps.Classifier, deps.Lookup, deps.Debouncer))

	return s
}

func RunServices(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg *config.Config, deps Dependencies) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		logger.Fatalw("failed to listen", "error", err)
	}

	s := NewServer(logger, cfg, deps)
	logger.Infow("listening for gRPC requests", "port", cfg.GRPCPort)

	go func() {
		if err := s.Serve(lis); err != nil {
			logger.Fatalw("failed to serve", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.GracefulStop()
	}()
}
