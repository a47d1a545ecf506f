// Package llm is the chat-completion client for the language model
// capability (Mistral-style HTTP API).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trip_concierge/internal/adapters/observability"
	"trip_concierge/internal/domain"
)

type Client struct {
	base  string
	model string
	key   string
	hc    *http.Client
	rl    *rate.Limiter
}

var ErrUnauthorized = errors.New("llm: unauthorized")

func New(base, model, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		key:   key,
		hc:    &http.Client{Timeout: 60 * time.Second},
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation and returns the assistant text. Transient
// failures (429, 5xx) are retried twice with a flat delay; the turn has no
// other retry layer above this.
func (c *Client) Complete(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: msgs})
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		start := time.Now()
		out, status, err := c.post(ctx, body)
		observability.ObserveExternal("llm", "chat", status, time.Since(start))
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		switch status {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
			}
			continue
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", ErrUnauthorized
		}
		return "", err
	}
	return "", lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.base+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", resp.StatusCode, fmt.Errorf("llm: bad status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", resp.StatusCode, fmt.Errorf("llm: decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", resp.StatusCode, errors.New("llm: empty choices")
	}
	return cr.Choices[0].Message.Content, resp.StatusCode, nil
}
