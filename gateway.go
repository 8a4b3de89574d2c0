package sitrans

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Provider is the interface for translation backends. Texts are
// translated as a batch to keep round-trips per page bounded.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Texts []string
	Pair  LanguagePair
}

// DocumentTranslator is an optional provider capability: translating an
// entire markup document in one call instead of per-fragment batches.
type DocumentTranslator interface {
	TranslateDocument(ctx context.Context, markup string, pair LanguagePair) (string, error)
}

// PackageManager is an optional provider capability mirroring backends
// that ship per-pair language packages: a catalog of available pairs
// and installation of a chosen one.
type PackageManager interface {
	AvailablePairs(ctx context.Context) ([]LanguagePair, error)
	Install(ctx context.Context, pair LanguagePair) error
}

// Detector maps a text literal to a best-guess language code. A failed
// detection means "not confidently in the source language"; the caller
// excludes the text rather than retrying.
type Detector interface {
	Detect(text string) (string, error)
}

// TranslationCache is the interface for the opt-in translation memory.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// RetryConfig holds configuration for the Gateway's retry behavior:
// a fixed backoff interval between attempts and a bounded attempt count.
type RetryConfig struct {
	MaxAttempts int                 // Total attempts before giving up
	Backoff     time.Duration       // Fixed delay between attempts
	Sleep       func(time.Duration) // Overrides the backoff wait; for tests
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		Backoff:     3 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes fn with fixed-backoff retry. Exhausting the attempt
// budget returns a RetryExhaustedError, which callers treat as fatal for
// the whole run: a dead backend fails identically for every remaining
// page, so continuing would only waste attempts.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// No sleep after the final attempt.
		if attempt < cfg.MaxAttempts {
			if cfg.Sleep != nil {
				cfg.Sleep(cfg.Backoff)
				continue
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(cfg.Backoff):
			}
		}
	}

	return zero, &RetryExhaustedError{Attempts: cfg.MaxAttempts, Cause: lastErr}
}

// IsRetryable checks if an error is worth retrying. Provider errors
// carry their own flag; context cancellation and malformed backend
// responses are final. Anything else (raw network errors and the like)
// is assumed transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var mismatch *CountMismatchError
	return !errors.As(err, &mismatch)
}

// Gateway wraps one translation backend with a resolved language pair,
// bounded retry and an optional translation memory. It is the only
// component that talks to the backend.
type Gateway struct {
	pair     LanguagePair
	provider Provider
	retry    RetryConfig
	cache    TranslationCache
}

// GatewayOption is a functional option for configuring the Gateway.
type GatewayOption func(*Gateway)

// WithRetryConfig sets the retry policy.
func WithRetryConfig(cfg RetryConfig) GatewayOption {
	return func(g *Gateway) {
		g.retry = cfg
	}
}

// WithCache enables the translation memory. Without it identical
// strings encountered in different nodes are re-requested, which is the
// default contract.
func WithCache(cache TranslationCache) GatewayOption {
	return func(g *Gateway) {
		g.cache = cache
	}
}

// NewGateway creates a Gateway for the given language pair and backend.
// The pair is normalized and, when the provider manages language
// packages, resolved against the catalog and installed once here,
// before any page is processed and before any worker starts.
func NewGateway(ctx context.Context, pair LanguagePair, provider Provider, opts ...GatewayOption) (*Gateway, error) {
	normalized, err := NormalizePair(pair)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		pair:     normalized,
		provider: provider,
		retry:    DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if pm, ok := provider.(PackageManager); ok {
		if err := resolvePair(ctx, pm, normalized); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// resolvePair checks the backend catalog for the pair and installs it.
func resolvePair(ctx context.Context, pm PackageManager, pair LanguagePair) error {
	pairs, err := pm.AvailablePairs(ctx)
	if err != nil {
		return &TranslationError{Message: "listing language pairs", Cause: err}
	}

	found := false
	for _, p := range pairs {
		if BaseLang(p.Source) == BaseLang(pair.Source) && BaseLang(p.Target) == BaseLang(pair.Target) {
			found = true
			break
		}
	}
	if !found {
		return &UnsupportedPairError{Pair: pair}
	}

	if err := pm.Install(ctx, pair); err != nil {
		return &TranslationError{Message: "installing language pair", Cause: err}
	}
	return nil
}

// Pair returns the resolved language pair.
func (g *Gateway) Pair() LanguagePair {
	return g.pair
}

// SupportsDocuments reports whether the backend can translate a whole
// document in one call.
func (g *Gateway) SupportsDocuments() bool {
	_, ok := g.provider.(DocumentTranslator)
	return ok
}

// Translate translates a batch of text fragments. Empty and
// whitespace-only entries short-circuit to empty results without
// reaching the backend; a batch with nothing left never calls it.
func (g *Gateway) Translate(ctx context.Context, texts []string) ([]string, error) {
	results := make([]string, len(texts))

	var pending []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if g.cache != nil {
			if cached, ok := g.cache.Get(CacheKey(HashText(text), g.pair.Target)); ok {
				results[i] = cached
				continue
			}
		}
		pending = append(pending, i)
	}

	if len(pending) == 0 {
		return results, nil
	}

	batch := make([]string, len(pending))
	for n, i := range pending {
		batch[n] = texts[i]
	}

	translated, err := WithRetry(ctx, g.retry, func() ([]string, error) {
		out, err := g.provider.Translate(ctx, TranslateRequest{Texts: batch, Pair: g.pair})
		if err != nil {
			return nil, err
		}
		if len(out) != len(batch) {
			return nil, &CountMismatchError{Expected: len(batch), Got: len(out)}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	for n, i := range pending {
		results[i] = translated[n]
		if g.cache != nil {
			_ = g.cache.Set(CacheKey(HashText(texts[i]), g.pair.Target), translated[n]) // Ignore cache set errors
		}
	}

	return results, nil
}

// TranslateText translates a single fragment.
func (g *Gateway) TranslateText(ctx context.Context, text string) (string, error) {
	results, err := g.Translate(ctx, []string{text})
	if err != nil {
		return "", err
	}
	return results[0], nil
}

// TranslateDocument translates a whole markup document in one call.
// Only valid when SupportsDocuments is true.
func (g *Gateway) TranslateDocument(ctx context.Context, markup string) (string, error) {
	dt, ok := g.provider.(DocumentTranslator)
	if !ok {
		return "", &TranslationError{Message: "backend does not support document translation"}
	}

	if strings.TrimSpace(markup) == "" {
		return "", nil
	}

	return WithRetry(ctx, g.retry, func() (string, error) {
		return dt.TranslateDocument(ctx, markup, g.pair)
	})
}
