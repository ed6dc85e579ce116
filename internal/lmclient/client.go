// Package lmclient is an HTTP client for an OpenAI-compatible local
// language-model endpoint (LM Studio style).
package lmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable indicates the model endpoint is unreachable.
var ErrUnavailable = errors.New("language model endpoint unavailable")

// ErrEmptyResponse indicates the endpoint answered with no usable content.
var ErrEmptyResponse = errors.New("language model returned empty content")

// Client sends chat completion requests to a configured endpoint.
type Client struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

// New creates a new language-model client.
func New(endpoint, model string) *Client {
	return &Client{
		endpoint:   endpoint,
		model:      model,
		httpClient: &http.Client{},
	}
}

// message is one chat message in the completions request.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for POST /v1/chat/completions.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// chatResponse is the subset of the completions response we read.
type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Options tune one completion call.
type Options struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Complete sends a system instruction and user prompt and returns the
// trimmed generated text. Any transport error, non-200 status, timeout, or
// malformed body is returned as an error; callers fall back deterministically.
func (c *Client) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("language model returned %d", resp.StatusCode)
	}

	var parsed chatResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}
