package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mongoDb "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/generator"
	"permission-wizard/internal/metrics"
	"permission-wizard/internal/model"
	"permission-wizard/internal/notifier"
	"permission-wizard/internal/parser"
	"permission-wizard/internal/repository"
	repoModel "permission-wizard/internal/repository/model"
)

const defaultCustomCategory = "custom"

type configService struct {
	logger *zap.SugaredLogger

	repo    repository.Repository
	notif   notifier.Notifier
	metrics *metrics.Metrics

	classifier classifier.RankClassifier
	lookup     classifier.PermissionLookup
	debouncer  *classifier.Debouncer
}

func newConfigService(logger *zap.SugaredLogger, repo repository.Repository, notif notifier.Notifier,
	m *metrics.Metrics, cls classifier.RankClassifier, lookup classifier.PermissionLookup,
	debouncer *classifier.Debouncer) ConfigServiceServer {

	return &configService{
		logger:     logger,
		repo:       repo,
		notif:      notif,
		metrics:    m,
		classifier: cls,
		lookup:     lookup,
		debouncer:  debouncer,
	}
}

// catalog returns the builtin catalog merged with the stored custom plugins.
// If the store is unreachable the builtin catalog is used on its own.
func (s *configService) catalog(ctx context.Context) *catalog.Catalog {
	base := catalog.Default()
	custom, err := s.repo.GetCustomPlugins(ctx)
	if err != nil {
		s.logger.Errorw("failed to load custom plugins, using builtin catalog", "error", err)
		return base
	}
	return base.WithCustomPlugins(repoModel.CustomPluginsToPlugins(custom))
}

func (s *configService) ParseConfig(_ context.Context, req *ParseConfigRequest) (*ParseConfigResponse, error) {
	if req.Filename != "" && !parser.SupportedFile(req.Filename) {
		s.metrics.ObserveParse("", metrics.OutcomeRejected)
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unsupported file %s, expected .yml, .yaml or .json", req.Filename))
	}

	parsed, err := parser.ParseConfig(req.Content)
	switch {
	case errors.Is(err, parser.UnrecognizedFormatError):
		s.metrics.ObserveParse("", metrics.OutcomeUnrecognized)
		return &ParseConfigResponse{
			Status:          ParseStatusUnrecognized,
			Message:         "could not detect a supported permission plugin format",
			Ranks:           make([]model.Rank, 0),
			ParsedRanks:     make([]model.ParsedRank, 0),
			DetectedPlugins: make([]string, 0),
		}, nil
	case errors.Is(err, parser.NoRanksError):
		dialect, _ := parser.DetectPluginType(req.Content)
		s.metrics.ObserveParse(string(dialect), metrics.OutcomeNoRanks)
		return &ParseConfigResponse{
			Status:          ParseStatusNoRanks,
			Message:         "the config was recognised but contains no ranks",
			PluginType:      dialect,
			Ranks:           make([]model.Rank, 0),
			ParsedRanks:     make([]model.ParsedRank, 0),
			DetectedPlugins: make([]string, 0),
		}, nil
	case err != nil:
		s.logger.Errorw("failed to parse config", "filename", req.Filename, "error", err)
		return nil, status.Error(codes.Internal, "failed to parse config")
	}

	s.metrics.ObserveParse(string(parsed.PluginType), metrics.OutcomeOK)

	return &ParseConfigResponse{
		Status:          ParseStatusOK,
		PluginType:      parsed.PluginType,
		Ranks:           parser.ConvertToRanks(parsed.Ranks),
		ParsedRanks:     parsed.Ranks,
		DetectedPlugins: parsed.DetectedPlugins,
	}, nil
}

func (s *configService) GenerateConfig(ctx context.Context, req *GenerateConfigRequest) (*GenerateConfigResponse, error) {
	if !req.Format.Valid() {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unsupported format %s", req.Format))
	}
	if req.Session.ServerType != "" && !req.Session.ServerType.Valid() {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unknown server type %s", req.Session.ServerType))
	}

	gen := generator.New(s.catalog(ctx))
	out, err := gen.Generate(req.Format, generator.OptionsFromSession(req.Session))
	if err != nil {
		if errors.Is(err, catalog.UnknownPluginError) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.logger.Errorw("failed to generate config", "format", req.Format, "error", err)
		return nil, status.Error(codes.Internal, "failed to generate config")
	}

	s.metrics.ObserveGeneration(string(out.Dialect), string(out.Format))

	if err := s.notif.ConfigExported(ctx, out, len(req.Session.Ranks)); err != nil {
		s.logger.Errorw("error sending config exported notification", "error", err)
	}

	return &GenerateConfigResponse{Output: out}, nil
}

func (s *configService) ClassifyRank(ctx context.Context, req *ClassifyRankRequest) (*ClassifyRankResponse, error) {
	if strings.TrimSpace(req.Input.Name) == "" {
		return nil, status.Error(codes.InvalidArgument, "rank name is required")
	}

	var (
		res classifier.Result
		err error
	)
	if req.DebounceKey != "" && s.debouncer != nil {
		res, err = s.debouncer.Classify(ctx, req.DebounceKey, req.Input)
	} else {
		res, err = s.classifier.Classify(ctx, req.Input)
	}

	if err != nil {
		if errors.Is(err, classifier.SupersededError) {
			return nil, status.Error(codes.Aborted, err.Error())
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		s.logger.Errorw("error classifying rank", "name", req.Input.Name, "error", err)
		return nil, status.Error(codes.Internal, "failed to classify rank")
	}

	return &ClassifyRankResponse{Result: res}, nil
}

func (s *configService) LookupPluginPermissions(ctx context.Context, req *LookupPluginPermissionsRequest) (*LookupPluginPermissionsResponse, error) {
	if strings.TrimSpace(req.PluginName) == "" {
		return nil, status.Error(codes.InvalidArgument, "plugin name is required")
	}

	res, err := s.lookup.LookupPluginPermissions(ctx, req.PluginName)
	if err != nil {
		s.logger.Errorw("error looking up plugin permissions", "plugin", req.PluginName, "error", err)
		return nil, status.Error(codes.Internal, "failed to look up plugin permissions")
	}

	return &LookupPluginPermissionsResponse{Result: res}, nil
}

func (s *configService) ListPlugins(ctx context.Context, _ *ListPluginsRequest) (*ListPluginsResponse, error) {
	return &ListPluginsResponse{Plugins: s.catalog(ctx).Plugins()}, nil
}

func (s *configService) ListServerTypes(_ context.Context, _ *ListServerTypesRequest) (*ListServerTypesResponse, error) {
	return &ListServerTypesResponse{
		ServerTypes: model.ServerTypes(),
		RankLevels:  model.RankLevels(),
	}, nil
}

func (s *configService) GetTemplate(_ context.Context, req *GetTemplateRequest) (*GetTemplateResponse, error) {
	tmpl, err := catalog.TemplateFor(req.ServerType)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &GetTemplateResponse{
		Template: tmpl,
		Session:  tmpl.Session(),
	}, nil
}

func (s *configService) CreateCustomPlugin(ctx context.Context, req *CreateCustomPluginRequest) (*CreateCustomPluginResponse, error) {
	id := model.SanitizeName(req.Name)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "plugin name is required")
	}
	if catalog.Default().Has(id) {
		return nil, status.Error(codes.AlreadyExists, fmt.Sprintf("%s is a builtin plugin", id))
	}

	nodes, err := normalizeNodes(id, req.Permissions)
	if err != nil {
		return nil, err
	}

	category := defaultCustomCategory
	if req.Category != nil && *req.Category != "" {
		category = *req.Category
	}

	now := time.Now()
	plugin := &repoModel.CustomPlugin{
		Id:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Permissions: nodes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateCustomPlugin(ctx, plugin); err != nil {
		if mongoDb.IsDuplicateKeyError(err) {
			return nil, status.Error(codes.AlreadyExists, "plugin already exists")
		}
		s.logger.Errorw("error creating custom plugin", "id", id, "error", err)
		return nil, status.Error(codes.Internal, "failed to create plugin")
	}

	if err := s.notif.CustomPluginUpdate(ctx, id, plugin, notifier.ChangeCreate); err != nil {
		s.logger.Errorw("error sending custom plugin update notification", "error", err)
	}

	return &CreateCustomPluginResponse{Plugin: plugin.ToPlugin()}, nil
}

func (s *configService) UpdateCustomPlugin(ctx context.Context, req *UpdateCustomPluginRequest) (*UpdateCustomPluginResponse, error) {
	plugin, err := s.repo.GetCustomPlugin(ctx, req.PluginId)
	if err != nil {
		if errors.Is(err, mongoDb.ErrNoDocuments) {
			return nil, status.Error(codes.NotFound, "plugin not found")
		}
		s.logger.Errorw("error getting custom plugin", "id", req.PluginId, "error", err)
		return nil, status.Error(codes.Internal, "failed to get plugin")
	}

	if req.Name != nil {
		plugin.Name = *req.Name
	}
	if req.Description != nil {
		plugin.Description = *req.Description
	}
	if req.Category != nil {
		plugin.Category = *req.Category
	}
	if req.Permissions != nil {
		nodes, err := normalizeNodes(plugin.Id, *req.Permissions)
		if err != nil {
			return nil, err
		}
		plugin.Permissions = nodes
	}
	plugin.UpdatedAt = time.Now()

	if err := s.repo.UpdateCustomPlugin(ctx, plugin); err != nil {
		if errors.Is(err, mongoDb.ErrNoDocuments) {
			return nil, status.Error(codes.NotFound, "plugin not found")
		}
		s.logger.Errorw("error updating custom plugin", "id", req.PluginId, "error", err)
		return nil, status.Error(codes.Internal, "failed to update plugin")
	}

	if err := s.notif.CustomPluginUpdate(ctx, plugin.Id, plugin, notifier.ChangeModify); err != nil {
		s.logger.Errorw("error sending custom plugin update notification", "error", err)
	}

	return &UpdateCustomPluginResponse{Plugin: plugin.ToPlugin()}, nil
}

func (s *configService) DeleteCustomPlugin(ctx context.Context, req *DeleteCustomPluginRequest) (*DeleteCustomPluginResponse, error) {
	if err := s.repo.DeleteCustomPlugin(ctx, req.PluginId); err != nil {
		if errors.Is(err, mongoDb.ErrNoDocuments) {
			return nil, status.Error(codes.NotFound, "plugin not found")
		}
		s.logger.Errorw("error deleting custom plugin", "id", req.PluginId, "error", err)
		return nil, status.Error(codes.Internal, "failed to delete plugin")
	}

	if err := s.notif.CustomPluginUpdate(ctx, req.PluginId, nil, notifier.ChangeDelete); err != nil {
		s.logger.Errorw("error sending custom plugin update notification", "error", err)
	}

	return &DeleteCustomPluginResponse{}, nil
}

// normalizeNodes validates user supplied nodes and fills the catalog ids.
// A missing risk level is treated as moderate.
func normalizeNodes(pluginId string, nodes []model.PermissionNode) ([]model.PermissionNode, error) {
	out := make([]model.PermissionNode, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))

	for _, n := range nodes {
		n.Node = strings.TrimSpace(n.Node)
		if n.Node == "" {
			return nil, status.Error(codes.InvalidArgument, "permission node is required")
		}
		if _, ok := seen[n.Node]; ok {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("duplicate permission node %s", n.Node))
		}
		seen[n.Node] = struct{}{}

		if !n.RecommendedRank.Valid() {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid recommended rank %q for %s", n.RecommendedRank, n.Node))
		}
		if n.RiskLevel == "" {
			n.RiskLevel = model.RiskModerate
		}
		for _, t := range n.ServerTypes {
			if !t.Valid() && t != model.ServerUniversal {
				return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("unknown server type %s for %s", t, n.Node))
			}
		}

		n.PluginId = pluginId
		n.Id = pluginId + ":" + n.Node
		out = append(out, n)
	}
	return out, nil
}
