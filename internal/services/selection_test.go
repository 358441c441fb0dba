package services

import (
	"context"
	"encoding/json"
	"testing"
)

func decodeSelection(t *testing.T, data []byte) selectionResponse {
	t.Helper()
	var resp selectionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode selection response: %v (%s)", err, data)
	}
	return resp
}

func TestSelectionSingleItemAlwaysReturned(t *testing.T) {
	svc := NewSelection()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		resp := decodeSelection(t, svc.Handle(ctx, []byte(`{"items":["only"]}`)))
		if resp.Status != "ok" {
			t.Fatalf("unexpected status: %+v", resp)
		}
		if string(resp.Value) != `"only"` {
			t.Fatalf("unexpected value: %s", resp.Value)
		}
	}
}

func TestSelectionEmptyItemsIsError(t *testing.T) {
	svc := NewSelection()
	for _, payload := range []string{`{"items":[]}`, `{}`, `{"items":null}`} {
		resp := decodeSelection(t, svc.Handle(context.Background(), []byte(payload)))
		if resp.Status != "error" {
			t.Fatalf("expected error for %s, got %+v", payload, resp)
		}
		if resp.Message == "" {
			t.Fatalf("expected message for %s", payload)
		}
	}
}

func TestSelectionUsesInjectedSource(t *testing.T) {
	svc := NewSelectionWithSource(func(n int) int { return n - 1 })
	resp := decodeSelection(t, svc.Handle(context.Background(), []byte(`{"items":[1,2,3]}`)))
	if string(resp.Value) != "3" {
		t.Fatalf("expected last item, got %s", resp.Value)
	}
}

func TestSelectionKeepsStructuredItemsIntact(t *testing.T) {
	svc := NewSelectionWithSource(func(int) int { return 0 })
	payload := `{"items":[{"title":"Dune","author":"Herbert"}]}`
	resp := decodeSelection(t, svc.Handle(context.Background(), []byte(payload)))
	var book map[string]string
	if err := json.Unmarshal(resp.Value, &book); err != nil {
		t.Fatalf("value should round-trip: %v", err)
	}
	if book["title"] != "Dune" {
		t.Fatalf("unexpected book: %v", book)
	}
}

func TestSelectionMalformedPayload(t *testing.T) {
	resp := decodeSelection(t, NewSelection().Handle(context.Background(), []byte("{{")))
	if resp.Status != "error" || resp.Message != "invalid payload" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
