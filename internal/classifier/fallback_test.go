package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"permission-wizard/internal/catalog"
	"permission-wizard/internal/model"
)

type classifierFunc func(ctx context.Context, in Input) (Result, error)

func (f classifierFunc) Classify(ctx context.Context, in Input) (Result, error) {
	return f(ctx, in)
}

type lookupFunc func(ctx context.Context, pluginName string) (LookupResult, error)

func (f lookupFunc) LookupPluginPermissions(ctx context.Context, pluginName string) (LookupResult, error) {
	return f(ctx, pluginName)
}

func TestFallback_Classify(t *testing.T) {
	tests := []struct {
		name     string
		external RankClassifier

		wantLevel      model.RankLevel
		wantConfidence Confidence
		wantFallback   bool
	}{
		{
			name:           "no external",
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceHigh,
		},
		{
			name: "external success",
			external: classifierFunc(func(context.Context, Input) (Result, error) {
				return Result{Level: model.LevelHelper, Confidence: ConfidenceHigh, Reason: "model"}, nil
			}),
			wantLevel:      model.LevelHelper,
			wantConfidence: ConfidenceHigh,
		},
		{
			name: "external error",
			external: classifierFunc(func(context.Context, Input) (Result, error) {
				return Result{}, errors.New("boom")
			}),
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceMedium,
			wantFallback:   true,
		},
		{
			name: "external invalid level",
			external: classifierFunc(func(context.Context, Input) (Result, error) {
				return Result{Level: "god"}, nil
			}),
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceMedium,
			wantFallback:   true,
		},
		{
			name: "external timeout",
			external: classifierFunc(func(ctx context.Context, _ Input) (Result, error) {
				<-ctx.Done()
				return Result{}, ctx.Err()
			}),
			wantLevel:      model.LevelMod,
			wantConfidence: ConfidenceMedium,
			wantFallback:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var fallbacks []string
			f := NewFallback(zap.NewNop().Sugar(), test.external, nil, CatalogLookup{Catalog: catalog.Default()},
				WithTimeout(20*time.Millisecond),
				WithFallbackHook(func(op string) { fallbacks = append(fallbacks, op) }),
			)

			res, err := f.Classify(context.Background(), Input{Name: "Moderator", TargetAudience: AudienceStaff})
			require.NoError(t, err)
			assert.Equal(t, test.wantLevel, res.Level)
			assert.Equal(t, test.wantConfidence, res.Confidence)

			if test.wantFallback {
				assert.Equal(t, []string{"classify"}, fallbacks)
			} else {
				assert.Empty(t, fallbacks)
			}
		})
	}
}

func TestFallback_LookupPluginPermissions(t *testing.T) {
	local := CatalogLookup{Catalog: catalog.Default()}

	external := lookupFunc(func(_ context.Context, name string) (LookupResult, error) {
		return LookupResult{PluginName: name, Found: true, Source: "ai"}, nil
	})
	f := NewFallback(zap.NewNop().Sugar(), nil, external, local)
	res, err := f.LookupPluginPermissions(context.Background(), "Anything")
	require.NoError(t, err)
	assert.Equal(t, "ai", res.Source)

	var fallbacks []string
	failing := lookupFunc(func(context.Context, string) (LookupResult, error) {
		return LookupResult{}, errors.New("boom")
	})
	f = NewFallback(zap.NewNop().Sugar(), nil, failing, local,
		WithFallbackHook(func(op string) { fallbacks = append(fallbacks, op) }))
	res, err = f.LookupPluginPermissions(context.Background(), "WorldEdit")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "catalog", res.Source)
	assert.Equal(t, []string{"lookup"}, fallbacks)
}

func TestFallback_CallerCancelled(t *testing.T) {
	var fallbacks []string
	hook := WithFallbackHook(func(op string) { fallbacks = append(fallbacks, op) })

	external := classifierFunc(func(ctx context.Context, _ Input) (Result, error) {
		<-ctx.Done()
		return Result{}, ctx.Err()
	})
	externalLookup := lookupFunc(func(ctx context.Context, _ string) (LookupResult, error) {
		<-ctx.Done()
		return LookupResult{}, ctx.Err()
	})
	f := NewFallback(zap.NewNop().Sugar(), external, externalLookup, CatalogLookup{Catalog: catalog.Default()},
		WithTimeout(time.Minute), hook)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Classify(ctx, Input{Name: "Moderator"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = f.LookupPluginPermissions(ctx, "WorldEdit")
	assert.ErrorIs(t, err, context.Canceled)

	assert.Empty(t, fallbacks)
}

func TestFallback_SupersededByDebouncer(t *testing.T) {
	var fallbacks []string
	external := classifierFunc(func(ctx context.Context, _ Input) (Result, error) {
		<-ctx.Done()
		return Result{}, ctx.Err()
	})
	f := NewFallback(zap.NewNop().Sugar(), external, nil, CatalogLookup{Catalog: catalog.Default()},
		WithTimeout(time.Minute),
		WithFallbackHook(func(op string) { fallbacks = append(fallbacks, op) }))
	d := NewDebouncer(f, time.Millisecond)

	first := make(chan error, 1)
	go func() {
		_, err := d.Classify(context.Background(), "session", Input{Name: "Moderator"})
		first <- err
	}()

	// Let the first request reach the external call before superseding it.
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _ = d.Classify(ctx, "session", Input{Name: "Admin"})

	assert.ErrorIs(t, <-first, SupersededError)
	assert.Empty(t, fallbacks)
}
