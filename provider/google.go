package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZaguanLabs/sitrans"
)

// googleEndpoint is the unauthenticated web translation endpoint. The
// same one the browser extension uses; no API key, but aggressively
// rate limited, so wrap this provider with a RateLimitedProvider for
// large mirrors.
const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleProvider implements the translation backend using the free
// Google Translate web endpoint. Fragment mode only.
type GoogleProvider struct {
	client  *http.Client
	baseURL string
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	BaseURL string        // Override the endpoint (for tests)
	Proxy   string        // Optional HTTP/HTTPS proxy URL
	Timeout time.Duration // Request timeout (default: 30s)
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	base := cfg.BaseURL
	if base == "" {
		base = googleEndpoint
	}

	return &GoogleProvider{
		client:  &http.Client{Timeout: timeout, Transport: transport},
		baseURL: base,
	}
}

// Translate translates each text with one endpoint call. The endpoint
// takes a single query per request.
func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		translated, err := p.translateOne(ctx, text, req.Pair)
		if err != nil {
			return nil, err
		}
		results[i] = translated
	}
	return results, nil
}

func (p *GoogleProvider) translateOne(ctx context.Context, text string, pair sitrans.LanguagePair) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", sitrans.BaseLang(pair.Source))
	params.Set("tl", sitrans.BaseLang(pair.Target))
	params.Set("dt", "t")
	params.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", &sitrans.ProviderError{Message: "creating request", Cause: err, Retryable: false}
	}
	httpReq.Header.Set("User-Agent", sitrans.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &sitrans.ProviderError{Message: "request failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &sitrans.ProviderError{Message: "reading response", Cause: err, Retryable: true}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &sitrans.ProviderError{Message: "rate limited by endpoint", Retryable: true}
	case resp.StatusCode >= 500:
		return "", &sitrans.ProviderError{
			Message:   fmt.Sprintf("endpoint returned %d", resp.StatusCode),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return "", &sitrans.ProviderError{
			Message:   fmt.Sprintf("endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			Retryable: false,
		}
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse unpacks the endpoint's nested-array payload:
// [[["translated","original",...],...],...]. The translation may be
// split across several segments; they concatenate in order.
func parseGoogleResponse(body []byte) (string, error) {
	var payload []interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &sitrans.ProviderError{Message: "invalid response payload", Cause: err, Retryable: false}
	}
	if len(payload) == 0 {
		return "", &sitrans.ProviderError{Message: "empty response payload", Retryable: false}
	}

	segments, ok := payload[0].([]interface{})
	if !ok {
		return "", &sitrans.ProviderError{Message: "unexpected response shape", Retryable: false}
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String(), nil
}

// Verify GoogleProvider implements Provider
var _ Provider = (*GoogleProvider)(nil)
