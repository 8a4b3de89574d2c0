package sitrans

import "fmt"

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation backend failure (API error,
// rate limit, network, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// RetryExhaustedError indicates the Gateway gave up after the configured
// maximum attempt count. It is fatal for the run: the orchestrator stops
// starting new work when it sees this error.
type RetryExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("maximum retries reached after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates an HTML processing failure (parse error,
// serialization error, unknown node reference).
type ProcessorError struct {
	Message string
	Cause   error
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error: %s", e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a translation memory operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the backend returned a different number of
// translations than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}

// UnsupportedPairError indicates the backend has no package for the
// requested language pair.
type UnsupportedPairError struct {
	Pair LanguagePair
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("language pair %s->%s not available from backend", e.Pair.Source, e.Pair.Target)
}
