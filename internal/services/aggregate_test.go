package services

import (
	"context"
	"encoding/json"
	"testing"
)

func TestAggregateCount(t *testing.T) {
	svc := NewAggregate()
	payload := `{"mode":"count","data":["a","b","a","c","b","a"]}`

	var resp countResponse
	if err := json.Unmarshal(svc.Handle(context.Background(), []byte(payload)), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if resp.TotalCount != 6 || resp.UniqueCount != 3 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	want := map[string]int{"a": 3, "b": 2, "c": 1}
	for item, count := range want {
		if resp.ItemCounts[item] != count {
			t.Fatalf("count for %q: got %d want %d", item, resp.ItemCounts[item], count)
		}
	}
}

func TestAggregateCountCollapsesStringEquivalents(t *testing.T) {
	svc := NewAggregate()
	// JSON 1 and "1" stringify identically and share a bucket.
	payload := `{"mode":"count","data":[1,"1",1.5,"1.5",true]}`

	var resp countResponse
	if err := json.Unmarshal(svc.Handle(context.Background(), []byte(payload)), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalCount != 5 || resp.UniqueCount != 3 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if resp.ItemCounts["1"] != 2 || resp.ItemCounts["1.5"] != 2 || resp.ItemCounts["true"] != 1 {
		t.Fatalf("unexpected buckets: %v", resp.ItemCounts)
	}
}

func TestAggregateCountValidation(t *testing.T) {
	svc := NewAggregate()
	ctx := context.Background()

	for _, payload := range []string{
		`{"mode":"count"}`,
		`{"mode":"count","data":"not a list"}`,
		`{"data":["a"]}`,
		`{"mode":"histogram","data":["a"]}`,
	} {
		var resp resultEnvelope
		if err := json.Unmarshal(svc.Handle(ctx, []byte(payload)), &resp); err != nil {
			t.Fatalf("decode for %s: %v", payload, err)
		}
		if resp.Success || resp.Error == "" {
			t.Fatalf("expected validation error for %s, got %+v", payload, resp)
		}
	}
}

func TestAggregateStats(t *testing.T) {
	svc := NewAggregate()
	payload := `{"mode":"stats","data":"hello wide  world"}`

	var resp statsResponse
	if err := json.Unmarshal(svc.Handle(context.Background(), []byte(payload)), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if resp.CharacterCount != 17 {
		t.Fatalf("unexpected character count: %d", resp.CharacterCount)
	}
	// Words are maximal non-whitespace runs; the double space adds nothing.
	if resp.WordCount != 3 {
		t.Fatalf("unexpected word count: %d", resp.WordCount)
	}
}

func TestAggregateStatsNullData(t *testing.T) {
	svc := NewAggregate()
	var resp statsResponse
	if err := json.Unmarshal(svc.Handle(context.Background(), []byte(`{"mode":"stats","data":null}`)), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.CharacterCount != 0 || resp.WordCount != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAggregateStatsCountsRunes(t *testing.T) {
	svc := NewAggregate()
	var resp statsResponse
	if err := json.Unmarshal(svc.Handle(context.Background(), []byte(`{"mode":"stats","data":"héllo"}`)), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CharacterCount != 5 {
		t.Fatalf("expected rune count 5, got %d", resp.CharacterCount)
	}
}

func TestAggregateMalformedPayload(t *testing.T) {
	var resp resultEnvelope
	if err := json.Unmarshal(NewAggregate().Handle(context.Background(), []byte("###")), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error != "invalid payload" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestStringifyItem(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"a", "a"},
		{float64(1), "1"},
		{float64(2.5), "2.5"},
		{true, "true"},
		{nil, "null"},
		{map[string]any{"b": 1.0, "a": 2.0}, `{"a":2,"b":1}`},
	}
	for _, tc := range cases {
		if got := stringifyItem(tc.in); got != tc.want {
			t.Fatalf("stringify %v: got %q want %q", tc.in, got, tc.want)
		}
	}
}
