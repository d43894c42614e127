// Package llm is a thin client for an OpenAI-compatible chat
// completions endpoint, plus the structured-output parsing the
// companion chat relies on.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"journaldb/pkg/logger"
)

// Message is one chat turn sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to a chat completions endpoint. The zero timeout is
// deliberate: completions can be slow, cancellation comes from the
// request context.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	httpc    *http.Client
}

// New returns a client for the given endpoint (base URL without the
// /chat/completions suffix) and model. apiKey may be empty for
// unauthenticated local endpoints.
func New(endpoint, model, apiKey string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 0},
	}
}

// Configured reports whether an upstream endpoint is set. When false,
// callers fall back to deterministic local output.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a system+user exchange upstream and returns the
// trimmed assistant text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.CompleteMessages(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

// CompleteMessages sends an arbitrary message list upstream and returns
// the trimmed assistant text of the first choice.
func (c *Client) CompleteMessages(ctx context.Context, msgs []Message) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("llm endpoint not configured")
	}
	body, err := json.Marshal(completionRequest{Model: c.model, Messages: msgs})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		logger.Warn("llm_request_failed", "error", err.Error())
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var out completionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("invalid completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := "upstream error"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		logger.Warn("llm_upstream_error", "status", resp.StatusCode, "message", msg)
		return "", fmt.Errorf("llm: %s (status %d)", msg, resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm: empty choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
