// Package ai wraps the external text-analysis providers behind a single
// completion interface. Configuration is explicit per client; nothing is
// read from process-wide state at call time.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/realorrender/realorrender/src/webclient"
)

// Client issues one-shot prompt/response calls against a provider.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts a plain function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config holds everything a provider client needs at construction time.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	WebSearch   bool
	Timeout     time.Duration
}

// New builds an HTTP client for an OpenAI-compatible chat endpoint.
// Returns nil when no API key is configured; callers treat a nil client as
// "provider disabled" and use their local fallback.
func New(cfg Config) Client {
	if cfg.APIKey == "" {
		return nil
	}
	return &httpClient{
		apiKey:     cfg.APIKey,
		baseURL:    valueOrDefault(cfg.BaseURL, "https://api.backboard.io/v1"),
		model:      valueOrDefault(cfg.Model, "gpt-4o-mini"),
		temp:       orFloat(cfg.Temperature, 0.1),
		maxTokens:  orInt(cfg.MaxTokens, 2048),
		webSearch:  cfg.WebSearch,
		httpClient: webclient.NewDefault(orDuration(cfg.Timeout, 30*time.Second)),
	}
}

type httpClient struct {
	apiKey     string
	baseURL    string
	model      string
	temp       float64
	maxTokens  int
	webSearch  bool
	httpClient *http.Client
}

func (c *httpClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":       c.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"max_tokens":  c.maxTokens,
		"temperature": c.temp,
	}
	if c.webSearch {
		payload["web_search"] = "Auto"
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider API error: %s", string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from provider")
	}
	return result.Choices[0].Message.Content, nil
}

func valueOrDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func orInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}

func orDuration(v, d time.Duration) time.Duration {
	if v != 0 {
		return v
	}
	return d
}
