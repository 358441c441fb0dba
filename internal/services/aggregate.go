package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"shuttle/internal/protocol"
)

// Aggregate serves the data-counter channel: "count" tallies a list of items,
// "stats" reports character and word counts for a text.
type Aggregate struct{}

// NewAggregate constructs the aggregate-count service.
func NewAggregate() *Aggregate { return &Aggregate{} }

func (a *Aggregate) Name() string { return protocol.AggregateCount.Name }

func (a *Aggregate) Channel() protocol.Channel { return protocol.AggregateCount }

type aggregateRequest struct {
	Mode string          `json:"mode"`
	Data json.RawMessage `json:"data"`
}

type countResponse struct {
	Success     bool           `json:"success"`
	TotalCount  int            `json:"total_count"`
	UniqueCount int            `json:"unique_count"`
	ItemCounts  map[string]int `json:"item_counts"`
	Error       string         `json:"error"`
}

type statsResponse struct {
	Success        bool   `json:"success"`
	CharacterCount int    `json:"character_count"`
	WordCount      int    `json:"word_count"`
	Error          string `json:"error"`
}

// Handle parses {"mode":..., "data":...} and dispatches on mode.
func (a *Aggregate) Handle(_ context.Context, request []byte) []byte {
	var req aggregateRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return a.Fault(invalidPayloadMessage)
	}

	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	switch mode {
	case "":
		return a.Fault("Missing 'mode' field. Use 'count' or 'stats'.")
	case "count":
		return a.count(req.Data)
	case "stats":
		return a.stats(req.Data)
	default:
		return a.Fault("Invalid mode '" + mode + "'. Use 'count' or 'stats'.")
	}
}

// Fault reports an error in the success/result/error dialect.
func (a *Aggregate) Fault(message string) []byte {
	return failureResult(message)
}

func (a *Aggregate) count(data json.RawMessage) []byte {
	if len(data) == 0 || string(data) == "null" {
		return a.Fault("Missing 'data' field. Provide a list of items.")
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return a.Fault("'data' must be a list of items for 'count' mode.")
	}

	itemCounts := make(map[string]int, len(items))
	for _, item := range items {
		itemCounts[stringifyItem(item)]++
	}

	return mustMarshal(countResponse{
		Success:     true,
		TotalCount:  len(items),
		UniqueCount: len(itemCounts),
		ItemCounts:  itemCounts,
	})
}

func (a *Aggregate) stats(data json.RawMessage) []byte {
	text := ""
	if len(data) > 0 && string(data) != "null" {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			text = s
		} else {
			// Non-string data still gets stats over its string form.
			var v any
			if err := json.Unmarshal(data, &v); err != nil {
				return a.Fault(invalidPayloadMessage)
			}
			text = stringifyItem(v)
		}
	}

	return mustMarshal(statsResponse{
		Success:        true,
		CharacterCount: utf8.RuneCountInString(text),
		WordCount:      len(strings.Fields(text)),
	})
}

// stringifyItem converts a decoded JSON value to a stable string so items that
// are equal under string conversion land in the same bucket (1 and "1" both
// count as "1").
func stringifyItem(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return "null"
	default:
		// Maps and slices: JSON re-encoding is deterministic (sorted keys).
		data, err := json.Marshal(value)
		if err != nil {
			return "unprintable"
		}
		return string(data)
	}
}
