// Package cache provides opt-in translation memory implementations.
//
// The translation gateway never memoizes on its own; identical strings
// in different nodes are re-requested by default. A cache from this
// package is attached explicitly when a run should reuse results, for
// example when retranslating a large mirror with heavy boilerplate.
package cache

// TranslationCache is the interface for translation memory.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
