package classifier

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// Fallback calls the external provider when one is configured and falls back
// to the local implementations on error, timeout or absence. It only returns
// an error when the caller's context ends.
type Fallback struct {
	logger *zap.SugaredLogger

	classifier RankClassifier
	lookup     PermissionLookup

	local       Local
	localLookup PermissionLookup

	timeout    time.Duration
	onFallback func(op string)
}

type FallbackOption func(*Fallback)

// WithTimeout bounds each external call. Non-positive durations keep the
// default.
func WithTimeout(d time.Duration) FallbackOption {
	return func(f *Fallback) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFallbackHook registers a callback invoked every time the local path is
// used after an external failure.
func WithFallbackHook(hook func(op string)) FallbackOption {
	return func(f *Fallback) { f.onFallback = hook }
}

// NewFallback wraps the external provider. Either external implementation may
// be nil, in which case the local one is used directly.
func NewFallback(logger *zap.SugaredLogger, external RankClassifier, externalLookup PermissionLookup,
	localLookup PermissionLookup, opts ...FallbackOption) *Fallback {

	f := &Fallback{
		logger:      logger,
		classifier:  external,
		lookup:      externalLookup,
		localLookup: localLookup,
		timeout:     DefaultTimeout,
		onFallback:  func(string) {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fallback) Classify(ctx context.Context, in Input) (Result, error) {
	if f.classifier == nil {
		return ClassifyLocal(in), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	res, err := f.classifier.Classify(callCtx, in)
	if err == nil && res.Level.Valid() {
		return res, nil
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	f.logger.Warnw("external rank classification failed, using local heuristic", "name", in.Name, "error", err)
	f.onFallback("classify")

	local := ClassifyLocal(in)
	if local.Confidence == ConfidenceHigh {
		local.Confidence = ConfidenceMedium
	}
	return local, nil
}

func (f *Fallback) LookupPluginPermissions(ctx context.Context, pluginName string) (LookupResult, error) {
	if f.lookup != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, f.timeout)
		defer cancel()

		res, err := f.lookup.LookupPluginPermissions(lookupCtx, pluginName)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return LookupResult{}, ctx.Err()
		}
		f.logger.Warnw("external permission lookup failed, using catalog", "plugin", pluginName, "error", err)
		f.onFallback("lookup")
	}

	res, err := f.localLookup.LookupPluginPermissions(ctx, pluginName)
	if err != nil {
		return LookupResult{PluginName: pluginName, Source: "catalog"}, nil
	}
	return res, nil
}
