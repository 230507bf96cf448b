package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"permission-wizard/internal/cache"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/config"
	"permission-wizard/internal/model"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

var (
	NotConfiguredError     = errors.New("ai provider not configured")
	UnknownProviderError   = errors.New("unknown ai provider")
	MalformedResponseError = errors.New("malformed ai provider response")
)

// completer sends one system + user prompt to a model and returns its text.
type completer interface {
	complete(ctx context.Context, system string, user string, webSearch bool) (string, error)
}

// Provider implements the rank classifier and permission lookup contracts on
// top of an LLM API.
type Provider struct {
	logger    *zap.SugaredLogger
	completer completer
	limiter   *rate.Limiter
	cache     cache.Cache
	cacheTTL  time.Duration
	webSearch bool
}

// New creates the provider selected by cfg. It returns NotConfiguredError
// when no API key is set. c may be nil to disable caching.
func New(cfg config.AIConfig, logger *zap.SugaredLogger, c cache.Cache) (*Provider, error) {
	if !cfg.Enabled() {
		return nil, NotConfiguredError
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	var comp completer
	switch strings.ToLower(cfg.Provider) {
	case ProviderAnthropic, "":
		comp = newAnthropicClient(cfg.APIKey, cfg.Model, "", httpClient)
	case ProviderOpenAI:
		comp = newOpenAIClient(cfg.APIKey, cfg.Model, "", httpClient)
	default:
		return nil, fmt.Errorf("%w: %s", UnknownProviderError, cfg.Provider)
	}

	return newProvider(logger, comp, cfg, c), nil
}

func newProvider(logger *zap.SugaredLogger, comp completer, cfg config.AIConfig, c cache.Cache) *Provider {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Provider{
		logger:    logger,
		completer: comp,
		limiter:   rate.NewLimiter(limit, 1),
		cache:     c,
		cacheTTL:  cfg.CacheTTL,
		webSearch: cfg.EnableWebSearch,
	}
}

type classifyResponse struct {
	Level      string `json:"level"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

func (p *Provider) Classify(ctx context.Context, in classifier.Input) (classifier.Result, error) {
	key := cacheKey("classify", in)
	var cached classifier.Result
	if p.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	user, err := json.Marshal(in)
	if err != nil {
		return classifier.Result{}, err
	}
	text, err := p.call(ctx, classifySystemPrompt, string(user), false)
	if err != nil {
		return classifier.Result{}, err
	}

	var resp classifyResponse
	if err := decodeJSONObject(text, &resp); err != nil {
		return classifier.Result{}, err
	}
	level, ok := model.ParseRankLevel(resp.Level)
	if !ok {
		return classifier.Result{}, fmt.Errorf("%w: unknown level %q", MalformedResponseError, resp.Level)
	}

	result := classifier.Result{
		Level:      level,
		Confidence: parseConfidence(resp.Confidence),
		Reason:     resp.Reason,
	}
	p.toCache(ctx, key, result)
	return result, nil
}

type lookupResponse struct {
	PluginName  string `json:"pluginName"`
	Found       bool   `json:"found"`
	Permissions []struct {
		Node            string `json:"node"`
		Description     string `json:"description"`
		RecommendedRank string `json:"recommendedRank"`
		RiskLevel       string `json:"riskLevel"`
	} `json:"permissions"`
}

func (p *Provider) LookupPluginPermissions(ctx context.Context, pluginName string) (classifier.LookupResult, error) {
	key := cacheKey("lookup", strings.ToLower(strings.TrimSpace(pluginName)))
	var cached classifier.LookupResult
	if p.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	text, err := p.call(ctx, lookupSystemPrompt, pluginName, p.webSearch)
	if err != nil {
		return classifier.LookupResult{}, err
	}

	var resp lookupResponse
	if err := decodeJSONObject(text, &resp); err != nil {
		return classifier.LookupResult{}, err
	}

	name := resp.PluginName
	if name == "" {
		name = pluginName
	}
	pluginId := model.SanitizeName(name)

	result := classifier.LookupResult{
		PluginName:  name,
		Found:       resp.Found && len(resp.Permissions) > 0,
		Permissions: make([]model.PermissionNode, 0, len(resp.Permissions)),
		Source:      "ai",
	}
	for _, n := range resp.Permissions {
		if n.Node == "" {
			continue
		}
		level, ok := model.ParseRankLevel(n.RecommendedRank)
		if !ok {
			level = model.LevelAdmin
		}
		result.Permissions = append(result.Permissions, model.PermissionNode{
			Id:              pluginId + ":" + n.Node,
			PluginId:        pluginId,
			Node:            n.Node,
			Description:     n.Description,
			RecommendedRank: level,
			RiskLevel:       parseRisk(n.RiskLevel),
			ServerTypes:     []model.ServerType{model.ServerUniversal},
		})
	}

	p.toCache(ctx, key, result)
	return result, nil
}

func (p *Provider) call(ctx context.Context, system string, user string, webSearch bool) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return p.completer.complete(ctx, system, user, webSearch)
}

func (p *Provider) fromCache(ctx context.Context, key string, dest any) bool {
	if p.cache == nil {
		return false
	}
	found, err := p.cache.Get(ctx, key, dest)
	if err != nil {
		p.logger.Warnw("failed to read ai cache", "key", key, "error", err)
		return false
	}
	return found
}

func (p *Provider) toCache(ctx context.Context, key string, value any) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, key, value, p.cacheTTL); err != nil {
		p.logger.Warnw("failed to write ai cache", "key", key, "error", err)
	}
}

func cacheKey(kind string, v any) string {
	data, _ := json.Marshal(v)
	sum := sha256.Sum256(data)
	return "ai:" + kind + ":" + hex.EncodeToString(sum[:])
}

// decodeJSONObject reads the first JSON object in text, tolerating prose or
// code fences around it.
func decodeJSONObject(text string, dest any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return fmt.Errorf("%w: no JSON object", MalformedResponseError)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), dest); err != nil {
		return fmt.Errorf("%w: %s", MalformedResponseError, err)
	}
	return nil
}

func parseConfidence(s string) classifier.Confidence {
	switch classifier.Confidence(strings.ToLower(s)) {
	case classifier.ConfidenceHigh:
		return classifier.ConfidenceHigh
	case classifier.ConfidenceLow:
		return classifier.ConfidenceLow
	}
	return classifier.ConfidenceMedium
}

func parseRisk(s string) model.RiskLevel {
	switch model.RiskLevel(strings.ToLower(s)) {
	case model.RiskSafe:
		return model.RiskSafe
	case model.RiskDangerous:
		return model.RiskDangerous
	case model.RiskCritical:
		return model.RiskCritical
	}
	return model.RiskModerate
}
