package services

import (
	"context"
	"encoding/json"
	"math/rand/v2"

	"shuttle/internal/protocol"
)

// Selection picks a uniformly random element from the submitted items. It
// speaks the status/value/message dialect of the selection channel.
type Selection struct {
	// intn returns a random int in [0, n). Replaceable in tests.
	intn func(n int) int
}

// NewSelection constructs a selection service backed by math/rand.
func NewSelection() *Selection {
	return &Selection{intn: rand.IntN}
}

// NewSelectionWithSource constructs a selection service with a fixed picker.
func NewSelectionWithSource(intn func(n int) int) *Selection {
	return &Selection{intn: intn}
}

func (s *Selection) Name() string { return protocol.Selection.Name }

func (s *Selection) Channel() protocol.Channel { return protocol.Selection }

type selectionRequest struct {
	Items []json.RawMessage `json:"items"`
}

type selectionResponse struct {
	Status  string          `json:"status"`
	Value   json.RawMessage `json:"value,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Handle parses {"items":[...]} and answers with one random element.
func (s *Selection) Handle(_ context.Context, request []byte) []byte {
	var req selectionRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return s.Fault(invalidPayloadMessage)
	}
	if len(req.Items) == 0 {
		return s.Fault("'items' must be a non-empty list")
	}
	value := req.Items[s.intn(len(req.Items))]
	return mustMarshal(selectionResponse{Status: "ok", Value: value})
}

// Fault reports an error in the selection dialect.
func (s *Selection) Fault(message string) []byte {
	return mustMarshal(selectionResponse{Status: "error", Message: message})
}
