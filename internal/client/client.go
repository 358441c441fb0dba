package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shuttle/internal/protocol"
	"shuttle/internal/slot"
)

// Options tune every exchange a Client performs. Zero values fall back to the
// protocol defaults.
type Options struct {
	Timeout      time.Duration
	PollInterval time.Duration
	// LockDir enables per-channel exchange locking when non-empty.
	LockDir string
}

// Client issues exchanges against the shared slot store.
type Client struct {
	store slot.Store
	opts  Options
}

// New constructs a client over the given store.
func New(store slot.Store, opts Options) *Client {
	return &Client{store: store, opts: opts}
}

// RemoteError is an error envelope returned by a worker.
type RemoteError struct {
	Service string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s service: %s", e.Service, e.Message)
}

func (c *Client) exchange(ctx context.Context, ch protocol.Channel, request []byte) ([]byte, error) {
	return protocol.Exchange(ctx, c.store, ch, request, protocol.ExchangeOptions{
		Timeout:      c.opts.Timeout,
		PollInterval: c.opts.PollInterval,
		LockDir:      c.opts.LockDir,
	})
}

// Pick asks the selection service for one uniformly random element of items.
// items is marshaled as-is, so any JSON-encodable slice works.
func (c *Client) Pick(ctx context.Context, items any) (json.RawMessage, error) {
	request, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return nil, fmt.Errorf("encode selection request: %w", err)
	}

	data, err := c.exchange(ctx, protocol.Selection, request)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status  string          `json:"status"`
		Value   json.RawMessage `json:"value"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	if resp.Status != "ok" {
		return nil, &RemoteError{Service: protocol.Selection.Name, Message: resp.Message}
	}
	return resp.Value, nil
}

// PickString is Pick for plain string items.
func (c *Client) PickString(ctx context.Context, items []string) (string, error) {
	value, err := c.Pick(ctx, items)
	if err != nil {
		return "", err
	}
	var picked string
	if err := json.Unmarshal(value, &picked); err != nil {
		return "", fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	return picked, nil
}

// Format asks the case-format service to transform text. format is one of
// upper, lower, title, clean.
func (c *Client) Format(ctx context.Context, text, format string) (string, error) {
	request, err := json.Marshal(map[string]string{"text": text, "format": format})
	if err != nil {
		return "", fmt.Errorf("encode format request: %w", err)
	}

	data, err := c.exchange(ctx, protocol.CaseFormat, request)
	if err != nil {
		return "", err
	}

	var resp struct {
		Success bool   `json:"success"`
		Result  string `json:"result"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	if !resp.Success {
		return "", &RemoteError{Service: protocol.CaseFormat.Name, Message: resp.Error}
	}
	return resp.Result, nil
}

// CountResult is the aggregate-count service's answer for count mode.
type CountResult struct {
	TotalCount  int            `json:"total_count"`
	UniqueCount int            `json:"unique_count"`
	ItemCounts  map[string]int `json:"item_counts"`
}

// Count asks the aggregate service to tally items.
func (c *Client) Count(ctx context.Context, items []any) (*CountResult, error) {
	request, err := json.Marshal(map[string]any{"mode": "count", "data": items})
	if err != nil {
		return nil, fmt.Errorf("encode count request: %w", err)
	}

	data, err := c.exchange(ctx, protocol.AggregateCount, request)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		CountResult
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	if !resp.Success {
		return nil, &RemoteError{Service: protocol.AggregateCount.Name, Message: resp.Error}
	}
	result := resp.CountResult
	return &result, nil
}

// TextStats is the aggregate-count service's answer for stats mode.
type TextStats struct {
	CharacterCount int `json:"character_count"`
	WordCount      int `json:"word_count"`
}

// Stats asks the aggregate service for character and word counts.
func (c *Client) Stats(ctx context.Context, text string) (*TextStats, error) {
	request, err := json.Marshal(map[string]any{"mode": "stats", "data": text})
	if err != nil {
		return nil, fmt.Errorf("encode stats request: %w", err)
	}

	data, err := c.exchange(ctx, protocol.AggregateCount, request)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		TextStats
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformed, err)
	}
	if !resp.Success {
		return nil, &RemoteError{Service: protocol.AggregateCount.Name, Message: resp.Error}
	}
	stats := resp.TextStats
	return &stats, nil
}

// TopWords asks the word-frequency service for its ranked list. The words
// channel has no error envelope, so an unanswered exchange degrades to an
// empty result rather than an error.
func (c *Client) TopWords(ctx context.Context, text string) (string, error) {
	data, err := c.exchange(ctx, protocol.WordFrequency, []byte(text))
	if err != nil {
		if errors.Is(err, protocol.ErrTimeout) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}
