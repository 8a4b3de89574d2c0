package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/sitrans"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the translation backend using OpenAI's API.
// It supports both fragment batches and whole-document translation.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates a batch of page fragments.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	userMessage, _ := json.Marshal(req.Texts)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fragmentPrompt(req.Pair)},
			{Role: openai.ChatMessageRoleUser, Content: string(userMessage)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &sitrans.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &sitrans.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return parseFragments(resp.Choices[0].Message.Content, len(req.Texts))
}

// TranslateDocument translates a whole markup document in one call.
func (p *OpenAIProvider) TranslateDocument(ctx context.Context, markup string, pair sitrans.LanguagePair) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: documentPrompt(pair)},
			{Role: openai.ChatMessageRoleUser, Content: markup},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &sitrans.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &sitrans.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	out := resp.Choices[0].Message.Content
	out = strings.TrimPrefix(out, "```html\n")
	out = strings.TrimPrefix(out, "```\n")
	out = strings.TrimSuffix(out, "```")
	return out, nil
}

func fragmentPrompt(pair sitrans.LanguagePair) string {
	target := sitrans.GetLanguageName(pair.Target)

	return fmt.Sprintf(`# Role
You are an expert native translator. You translate short fragments of
website text from %s into idiomatic %s.

# Task
The user message is a JSON array of strings extracted from cached web
pages: headings, paragraphs, links, image alt text, input placeholders.
Translate each string into %s.

# Rules
- Do NOT translate HTML tags, class names, URLs, email addresses, or code.
- Do NOT translate proper nouns, brand names, or course provider names.
- Keep numbers, ratings, and counters exactly as written.
- Preserve leading/trailing whitespace and punctuation style.
- Rephrase for natural flow; never produce a word-by-word calque.

# Format
Return a valid JSON object with a single key "translations" containing
an array of strings in the exact same order as the input.
Example: { "translations": ["translated string 1", "translated string 2"] }
Do NOT wrap the output in Markdown code blocks.`, sitrans.GetLanguageName(pair.Source), target, target)
}

func documentPrompt(pair sitrans.LanguagePair) string {
	target := sitrans.GetLanguageName(pair.Target)

	return fmt.Sprintf(`You translate complete HTML pages from %s into %s.
Translate only human-readable text: element text, alt attributes,
placeholder attributes, and the title. Leave all markup, attributes,
scripts, styles, URLs, and the DOCTYPE declaration exactly as they are.
Return the full HTML document and nothing else.`, sitrans.GetLanguageName(pair.Source), target)
}

func parseFragments(content string, expectedCount int) ([]string, error) {
	// Object with a "translations" key is the requested shape.
	var objResult map[string]interface{}
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		if translations, ok := objResult["translations"]; ok {
			if arr, ok := translations.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
		// Fallback: first array value
		for _, v := range objResult {
			if arr, ok := v.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	// Some models return a bare array despite instructions.
	var arrResult []interface{}
	if err := json.Unmarshal([]byte(content), &arrResult); err == nil {
		return toStringSlice(arrResult, expectedCount)
	}

	return nil, &sitrans.ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func toStringSlice(arr []interface{}, expectedCount int) ([]string, error) {
	result := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			result[i] = s
		} else {
			result[i] = fmt.Sprintf("%v", v)
		}
	}

	if len(result) != expectedCount {
		return nil, &sitrans.CountMismatchError{
			Expected: expectedCount,
			Got:      len(result),
		}
	}

	return result, nil
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements both translation modes
var (
	_ Provider           = (*OpenAIProvider)(nil)
	_ DocumentTranslator = (*OpenAIProvider)(nil)
)
