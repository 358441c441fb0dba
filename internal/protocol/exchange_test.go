package protocol

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"shuttle/internal/slot"
)

func fastOptions() ExchangeOptions {
	return ExchangeOptions{Timeout: 250 * time.Millisecond, PollInterval: 10 * time.Millisecond}
}

func TestExchangeReturnsWorkerResponse(t *testing.T) {
	store := slot.NewMemoryStore()
	ctx := context.Background()

	// Simulated worker: answer as soon as the request lands.
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(time.Second)
		for time.Now().Before(deadline) {
			data, _ := store.Read(ctx, Selection.RequestSlot)
			if len(data) > 0 {
				_ = store.Clear(ctx, Selection.RequestSlot)
				_ = store.Write(ctx, Selection.ResponseSlot, []byte(`{"status":"ok","value":1}`))
				return
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	resp, err := Exchange(ctx, store, Selection, []byte(`{"items":[1]}`), fastOptions())
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if string(resp) != `{"status":"ok","value":1}` {
		t.Fatalf("unexpected response: %s", resp)
	}
	<-done

	// Worker consumed the request slot.
	if data, _ := store.Read(ctx, Selection.RequestSlot); data != nil {
		t.Fatalf("request slot should be consumed, got %q", data)
	}
}

func TestExchangeDiscardsStaleResponse(t *testing.T) {
	store := slot.NewMemoryStore()
	ctx := context.Background()

	// Leftover from a previous exchange whose caller timed out.
	if err := store.Write(ctx, CaseFormat.ResponseSlot, []byte(`{"success":true,"result":"STALE"}`)); err != nil {
		t.Fatalf("seed stale response: %v", err)
	}

	_, err := Exchange(ctx, store, CaseFormat, []byte(`{"text":"x","format":"upper"}`), fastOptions())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout with no worker, got %v", err)
	}
	// The stale response must never have been observable as a reply.
	if data, _ := store.Read(ctx, CaseFormat.ResponseSlot); data != nil {
		t.Fatalf("stale response should have been cleared, got %q", data)
	}
}

func TestExchangeTimeoutBounds(t *testing.T) {
	store := slot.NewMemoryStore()
	opts := ExchangeOptions{Timeout: 100 * time.Millisecond, PollInterval: 20 * time.Millisecond}

	start := time.Now()
	_, err := Exchange(context.Background(), store, AggregateCount, []byte(`{"mode":"stats","data":""}`), opts)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if elapsed < opts.Timeout {
		t.Fatalf("timed out too early: %v", elapsed)
	}
	if elapsed > opts.Timeout+3*opts.PollInterval {
		t.Fatalf("timed out too late: %v", elapsed)
	}
}

func TestExchangeMalformedResponseFailsFast(t *testing.T) {
	store := slot.NewMemoryStore()
	ctx := context.Background()

	go func() {
		for {
			data, _ := store.Read(ctx, AggregateCount.RequestSlot)
			if len(data) > 0 {
				_ = store.Write(ctx, AggregateCount.ResponseSlot, []byte("not json {"))
				return
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	_, err := Exchange(ctx, store, AggregateCount, []byte(`{"mode":"stats","data":""}`), fastOptions())
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
	// The reader clears the poisoned slot.
	if data, _ := store.Read(ctx, AggregateCount.ResponseSlot); data != nil {
		t.Fatalf("malformed response should be cleared, got %q", data)
	}
}

func TestExchangeTextChannelAcceptsRawContent(t *testing.T) {
	store := slot.NewMemoryStore()
	ctx := context.Background()

	go func() {
		for {
			data, _ := store.Read(ctx, WordFrequency.RequestSlot)
			if len(data) > 0 {
				_ = store.Write(ctx, WordFrequency.ResponseSlot, []byte("the,3\nend,1\n"))
				return
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	resp, err := Exchange(ctx, store, WordFrequency, []byte("the the the end"), fastOptions())
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if string(resp) != "the,3\nend,1" {
		t.Fatalf("unexpected response: %q", resp)
	}
}

func TestExchangeHonorsContextCancellation(t *testing.T) {
	store := slot.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	opts := ExchangeOptions{Timeout: 5 * time.Second, PollInterval: 10 * time.Millisecond}
	_, err := Exchange(ctx, store, Selection, []byte(`{"items":[1]}`), opts)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestExchangeChannelLocking(t *testing.T) {
	store := slot.NewMemoryStore()
	lockDir := t.TempDir()
	opts := ExchangeOptions{Timeout: 100 * time.Millisecond, PollInterval: 10 * time.Millisecond, LockDir: lockDir}

	holder := flock.New(filepath.Join(lockDir, Selection.Name+".lock"))
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("take channel lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = holder.Unlock() }()

	_, err = Exchange(context.Background(), store, Selection, []byte(`{"items":[2]}`), opts)
	if !errors.Is(err, ErrChannelBusy) {
		t.Fatalf("expected channel busy, got %v", err)
	}
}
