package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ZaguanLabs/sitrans"
)

// MockProvider is a mock translation backend for testing. It translates
// from a fixed table, counts calls, and can be told to fail. Safe for
// concurrent use so it can back multi-worker runs.
type MockProvider struct {
	mu           sync.Mutex
	Translations map[string]string      // Map of source text to translation
	Pairs        []sitrans.LanguagePair // Catalog reported by AvailablePairs
	Installed    []sitrans.LanguagePair // Pairs Install was called with
	CallCount    int                    // Number of times Translate was called
	LastRequest  *TranslateRequest      // Last request received
	Err          error                  // When set, Translate always fails with it
	FailuresLeft int                    // Fail this many calls before succeeding
	FailuresErr  error                  // Error returned while FailuresLeft > 0
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                "नमस्ते",
			"Hello World":          "नमस्ते दुनिया",
			"Welcome to our site.": "हमारी साइट पर आपका स्वागत है।",
			"Free online courses":  "मुफ़्त ऑनलाइन पाठ्यक्रम",
		},
		Pairs: []sitrans.LanguagePair{
			{Source: "en", Target: "hi"},
			{Source: "en", Target: "es"},
		},
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req

	if m.FailuresLeft > 0 {
		m.FailuresLeft--
		if m.FailuresErr != nil {
			return nil, m.FailuresErr
		}
		return nil, &sitrans.ProviderError{Message: "mock transient failure", Retryable: true}
	}
	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		results[i] = m.lookup(text)
	}
	return results, nil
}

// TranslateDocument translates every known phrase inside the markup.
// Good enough for exercising document mode in tests.
func (m *MockProvider) TranslateDocument(ctx context.Context, markup string, pair sitrans.LanguagePair) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++

	if m.FailuresLeft > 0 {
		m.FailuresLeft--
		if m.FailuresErr != nil {
			return "", m.FailuresErr
		}
		return "", &sitrans.ProviderError{Message: "mock transient failure", Retryable: true}
	}
	if m.Err != nil {
		return "", m.Err
	}

	for src, dst := range m.Translations {
		markup = strings.ReplaceAll(markup, src, dst)
	}
	return markup, nil
}

// AvailablePairs returns the configured catalog.
func (m *MockProvider) AvailablePairs(ctx context.Context) ([]sitrans.LanguagePair, error) {
	return m.Pairs, nil
}

// Install records the installed pair.
func (m *MockProvider) Install(ctx context.Context, pair sitrans.LanguagePair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Installed = append(m.Installed, pair)
	return nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

func (m *MockProvider) lookup(text string) string {
	if translation, ok := m.Translations[text]; ok {
		return translation
	}
	// Bracketed text for unknown translations
	return fmt.Sprintf("[%s]", text)
}

// Verify MockProvider implements the full capability surface
var (
	_ Provider           = (*MockProvider)(nil)
	_ DocumentTranslator = (*MockProvider)(nil)
	_ PackageManager     = (*MockProvider)(nil)
)
