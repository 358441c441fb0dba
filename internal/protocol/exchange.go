package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"shuttle/internal/slot"
)

// Exchange timing defaults, shared with the worker loops.
const (
	DefaultTimeout      = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// ExchangeOptions tune one caller-side exchange. Zero values fall back to the
// protocol defaults.
type ExchangeOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	// LockDir enables per-channel locking: when non-empty, the exchange holds
	// a lock file <channel>.lock in this directory for its whole duration.
	LockDir string
}

func (o ExchangeOptions) withDefaults() ExchangeOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Exchange performs one request/response cycle on a channel: discard any
// stale response, publish the request, then poll the response slot until
// parseable content arrives or the timeout elapses.
//
// The returned bytes are the trimmed response content. ErrTimeout means the
// worker never answered in time; ErrMalformed means the response slot held
// content the channel encoding cannot parse (the slot is cleared before
// returning so it cannot poison the next exchange).
//
// A single caller per channel is assumed. A second concurrent caller corrupts
// the exchange unless LockDir is set.
func Exchange(ctx context.Context, store slot.Store, ch Channel, request []byte, opts ExchangeOptions) ([]byte, error) {
	opts = opts.withDefaults()

	if opts.LockDir != "" {
		lock := flock.New(filepath.Join(opts.LockDir, ch.Name+".lock"))
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("lock channel %s: %w", ch.Name, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrChannelBusy, ch.Name)
		}
		defer func() { _ = lock.Unlock() }()
	}

	if err := store.Clear(ctx, ch.ResponseSlot); err != nil {
		return nil, fmt.Errorf("clear response slot: %w", err)
	}
	if err := store.Write(ctx, ch.RequestSlot, request); err != nil {
		return nil, fmt.Errorf("write request slot: %w", err)
	}

	start := time.Now()
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		data, err := store.Read(ctx, ch.ResponseSlot)
		if err != nil {
			return nil, fmt.Errorf("read response slot: %w", err)
		}
		content := bytes.TrimSpace(data)
		if len(content) > 0 {
			if ch.Encoding == EncodingJSON && !json.Valid(content) {
				_ = store.Clear(ctx, ch.ResponseSlot)
				return nil, ErrMalformed
			}
			return content, nil
		}

		if time.Since(start) >= opts.Timeout {
			return nil, ErrTimeout
		}
	}
}
