// Package openai provides an LLM service adapter using the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultModel      = "gpt-4o-mini"
	DefaultLLMTimeout = 30 * time.Second
)

// Config holds configuration for the OpenAI LLM service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// LLMService provides query rewriting and backend ranking via the OpenAI API.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// chatCompletionRequest is the OpenAI /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// chatCompletionMsg is the OpenAI chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new OpenAI LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// rewritePrompt asks for a search-engine-ready phrasing of a travel query.
const rewritePrompt = `You are an expert at crafting search queries for travel research.
Rewrite this query for a web search engine. Keep destinations, dates and airport codes intact.
Return ONLY the rewritten query, nothing else.

Original: %s
Rewritten:`

// RewriteQuery rewrites a travel query for better search recall.
func (s *LLMService) RewriteQuery(ctx context.Context, query string) (string, error) {
	result, err := s.chatCompletion(ctx, []chatCompletionMsg{
		{Role: "user", Content: fmt.Sprintf(rewritePrompt, query)},
	}, 100)
	if err != nil {
		return "", fmt.Errorf("rewrite query: %w", err)
	}
	return strings.Trim(strings.TrimSpace(result), `"`), nil
}

// rankPrompt asks for a priority ordering over the eligible backends.
const rankPrompt = `Query: %q

These data sources are available, in default priority order: %s.
- web: travel guides, articles, general information
- places: hotels, restaurants, attractions with ratings
- browser: live page extraction for prices and availability
- flight: airline schedules and fares

Order the sources by relevance to the query, best first. Drop sources that are
clearly irrelevant. Respond with ONLY a comma-separated list of source names.`

// RankBackends reorders the eligible backend set by relevance.
// The caller treats the result as advisory and discards unknown names.
func (s *LLMService) RankBackends(ctx context.Context, query string, eligible []domain.BackendKind) ([]domain.BackendKind, error) {
	names := make([]string, len(eligible))
	for i, k := range eligible {
		names[i] = string(k)
	}

	result, err := s.chatCompletion(ctx, []chatCompletionMsg{
		{Role: "user", Content: fmt.Sprintf(rankPrompt, query, strings.Join(names, ", "))},
	}, 50)
	if err != nil {
		return nil, fmt.Errorf("rank backends: %w", err)
	}

	var ranked []domain.BackendKind
	for _, part := range strings.Split(result, ",") {
		if kind, ok := domain.ParseBackendKind(part); ok {
			ranked = append(ranked, kind)
		}
	}
	return ranked, nil
}

// ModelName returns the name of the model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// chatCompletion sends one chat request and returns the first choice.
func (s *LLMService) chatCompletion(ctx context.Context, messages []chatCompletionMsg, maxTokens int) (string, error) {
	reqBody := chatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
