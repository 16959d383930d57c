package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	// tauntMaxTokens bounds one batch response; a batch of ten taunts at
	// fifteen characters each fits comfortably.
	tauntMaxTokens = 300
)

// TauntFetcher is the remote taunt source. This is an interface so tests can
// substitute a canned implementation.
type TauntFetcher interface {
	FetchTaunts(ctx context.Context, count int) ([]string, error)
}

// errOffline marks fetches skipped because the connectivity probe failed.
var errOffline = errors.New("taunt api unreachable")

// AnthropicClient fetches taunt batches from the Anthropic Messages API.
type AnthropicClient struct {
	apiKey  string
	model   string
	maxLen  int
	baseURL string
	client  *http.Client
	checker *ConnChecker
	logger  *slog.Logger
}

// NewAnthropicClient builds a client from the taunts config and a resolved
// API key. checker may be nil to skip reachability probes.
func NewAnthropicClient(cfg TauntsConfig, apiKey string, checker *ConnChecker, logger *slog.Logger) *AnthropicClient {
	return &AnthropicClient{
		apiKey:  apiKey,
		model:   cfg.Model,
		maxLen:  cfg.MaxLen,
		baseURL: anthropicMessagesURL,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		checker: checker,
		logger:  logger,
	}
}

func tauntPrompt(count int) string {
	return fmt.Sprintf("Generate %d very short sarcastic taunts for a button clicker. "+
		"MAX 15 characters each. Examples: 'Wow. A click.' 'So impressive' 'Try harder'. "+
		"One per line, no numbers, no quotes.", count)
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// FetchTaunts asks the model for count fresh taunts and returns the usable
// lines. An empty result with a nil error cannot happen; failures always
// carry an error so the caller can fall back to the local pool.
func (a *AnthropicClient) FetchTaunts(ctx context.Context, count int) ([]string, error) {
	if a.apiKey == "" {
		return nil, errors.New("no api key configured")
	}
	if a.checker != nil && !a.checker.Online(ctx) {
		return nil, errOffline
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     a.model,
		MaxTokens: tauntMaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: tauntPrompt(count)}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call messages api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("messages api returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, errors.New("response has no content blocks")
	}

	taunts := parseTauntLines(parsed.Content[0].Text, a.maxLen)
	if len(taunts) == 0 {
		return nil, errors.New("response contained no usable taunts")
	}
	a.logger.Info("fetched taunts", "requested", count, "got", len(taunts))
	return taunts, nil
}

// parseTauntLines splits model output into usable taunts: one per line,
// trimmed, dropping blanks and anything too wide to fit two display rows.
func parseTauntLines(text string, maxLen int) []string {
	var taunts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > maxLen {
			continue
		}
		taunts = append(taunts, line)
	}
	return taunts
}

// LoadAPIKey resolves the API key: an inline config value wins, then the key
// file. Both empty means remote taunts stay disabled.
func LoadAPIKey(cfg TauntsConfig) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	if cfg.APIKeyFile == "" {
		return "", nil
	}
	b, err := os.ReadFile(ExpandPath(cfg.APIKeyFile))
	if err != nil {
		return "", fmt.Errorf("read api key file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
