package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"permission-wizard/internal/cache"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/classifier"
	"permission-wizard/internal/config"
	"permission-wizard/internal/model"
)

func anthropicServer(t *testing.T, calls *atomic.Int32, text string, check func(req anthropicRequest)) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{{"type": "text", "text": text}},
			"stop_reason": "end_turn",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server, cfg config.AIConfig, c cache.Cache) *Provider {
	comp := newAnthropicClient("test-key", "", srv.URL, srv.Client())
	return newProvider(zap.NewNop().Sugar(), comp, cfg, c)
}

func TestProvider_Classify_Anthropic(t *testing.T) {
	var calls atomic.Int32
	srv := anthropicServer(t, &calls, "```json\n{\"level\": \"mvp_plus\", \"confidence\": \"high\", \"reason\": \"paid tier\"}\n```",
		func(req anthropicRequest) {
			assert.Equal(t, anthropicDefaultModel, req.Model)
			assert.Equal(t, classifySystemPrompt, req.System)
			assert.Empty(t, req.Tools)
			require.Len(t, req.Messages, 1)
			assert.Contains(t, req.Messages[0].Content, "Hero")
		})

	p := newTestProvider(srv, config.AIConfig{}, nil)
	res, err := p.Classify(context.Background(), classifier.Input{Name: "Hero", TargetAudience: classifier.AudienceDonor})
	require.NoError(t, err)
	assert.Equal(t, classifier.Result{Level: model.LevelMVPPlus, Confidence: classifier.ConfidenceHigh, Reason: "paid tier"}, res)
	assert.EqualValues(t, 1, calls.Load())
}

func TestProvider_Classify_OpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "json_object", req.ResponseFormat["type"])
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{
				"role":    "assistant",
				"content": `{"level": "helper", "confidence": "unsure", "reason": "support staff"}`,
			}}},
		})
	}))
	defer srv.Close()

	comp := newOpenAIClient("test-key", "", srv.URL, srv.Client())
	p := newProvider(zap.NewNop().Sugar(), comp, config.AIConfig{}, nil)

	res, err := p.Classify(context.Background(), classifier.Input{Name: "Support"})
	require.NoError(t, err)
	assert.Equal(t, model.LevelHelper, res.Level)
	assert.Equal(t, classifier.ConfidenceMedium, res.Confidence)
}

func TestProvider_Classify_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no json", text: "I think it is a VIP rank"},
		{name: "unknown level", text: `{"level": "king", "confidence": "high"}`},
		{name: "broken json", text: `{"level": "vip",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := anthropicServer(t, &calls, tt.text, nil)
			p := newTestProvider(srv, config.AIConfig{}, nil)

			_, err := p.Classify(context.Background(), classifier.Input{Name: "x"})
			assert.ErrorIs(t, err, MalformedResponseError)
		})
	}
}

func TestProvider_Classify_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv, config.AIConfig{}, nil)
	_, err := p.Classify(context.Background(), classifier.Input{Name: "x"})
	assert.ErrorContains(t, err, "status 429")
}

func TestProvider_Classify_Cached(t *testing.T) {
	s := miniredis.RunT(t)
	c := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))

	var calls atomic.Int32
	srv := anthropicServer(t, &calls, `{"level": "admin", "confidence": "high", "reason": "staff"}`, nil)
	p := newTestProvider(srv, config.AIConfig{CacheTTL: time.Hour}, c)

	in := classifier.Input{Name: "Boss", Description: "runs the place"}
	first, err := p.Classify(context.Background(), in)
	require.NoError(t, err)
	second, err := p.Classify(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load())

	// different input is not served from the cache
	_, err = p.Classify(context.Background(), classifier.Input{Name: "Boss", Description: "other"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestProvider_LookupPluginPermissions(t *testing.T) {
	var calls atomic.Int32
	srv := anthropicServer(t, &calls, `{"pluginName": "ShopGUI+", "found": true, "permissions": [
		{"node": "shopguiplus.shop", "description": "open shop", "recommendedRank": "player", "riskLevel": "safe"},
		{"node": "shopguiplus.reload", "recommendedRank": "superuser", "riskLevel": "nope"},
		{"node": ""}
	]}`, func(req anthropicRequest) {
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "web_search", req.Tools[0].Name)
		assert.Equal(t, "ShopGUI+", req.Messages[0].Content)
	})

	p := newTestProvider(srv, config.AIConfig{EnableWebSearch: true}, nil)
	res, err := p.LookupPluginPermissions(context.Background(), "ShopGUI+")
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.Equal(t, "ai", res.Source)
	require.Len(t, res.Permissions, 2)
	assert.Equal(t, model.PermissionNode{
		Id:              "shopgui_plus:shopguiplus.shop",
		PluginId:        "shopgui_plus",
		Node:            "shopguiplus.shop",
		Description:     "open shop",
		RecommendedRank: model.LevelPlayer,
		RiskLevel:       model.RiskSafe,
		ServerTypes:     []model.ServerType{model.ServerUniversal},
	}, res.Permissions[0])
	assert.Equal(t, model.LevelAdmin, res.Permissions[1].RecommendedRank)
	assert.Equal(t, model.RiskModerate, res.Permissions[1].RiskLevel)
}

func TestNew(t *testing.T) {
	_, err := New(config.AIConfig{}, zap.NewNop().Sugar(), nil)
	assert.ErrorIs(t, err, NotConfiguredError)

	_, err = New(config.AIConfig{APIKey: "k", Provider: "gemini"}, zap.NewNop().Sugar(), nil)
	assert.ErrorIs(t, err, UnknownProviderError)

	p, err := New(config.AIConfig{APIKey: "k", Provider: "OpenAI"}, zap.NewNop().Sugar(), nil)
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, p.completer)
}

func TestProvider_FallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(srv, config.AIConfig{}, nil)
	var fallbacks []string
	f := classifier.NewFallback(zap.NewNop().Sugar(), p, p, classifier.CatalogLookup{Catalog: catalog.Default()},
		classifier.WithFallbackHook(func(op string) { fallbacks = append(fallbacks, op) }))

	res, err := f.Classify(context.Background(), classifier.Input{Name: "VIP+"})
	require.NoError(t, err)
	assert.Equal(t, model.LevelVIPPlus, res.Level)

	lookup, err := f.LookupPluginPermissions(context.Background(), "WorldGuard")
	require.NoError(t, err)
	assert.True(t, lookup.Found)
	assert.Equal(t, "catalog", lookup.Source)

	assert.Equal(t, []string{"classify", "lookup"}, fallbacks)
}
