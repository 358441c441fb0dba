package worker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"shuttle/internal/logging"
	"shuttle/internal/protocol"
	"shuttle/internal/slot"
)

// Handler is one service's pure computation plus its envelope dialect.
// Handle receives trimmed request bytes and returns complete response bytes;
// Fault builds an error response for failures the handler never saw, such as
// panics caught at the loop boundary.
type Handler interface {
	Name() string
	Channel() protocol.Channel
	Handle(ctx context.Context, request []byte) []byte
	Fault(message string) []byte
}

// Runner polls one channel's request slot and serves it with a Handler.
type Runner struct {
	store        slot.Store
	handler      Handler
	pollInterval time.Duration
	logger       *slog.Logger
}

// NewRunner constructs a runner. A zero pollInterval falls back to the
// protocol default; a nil logger logs nowhere.
func NewRunner(store slot.Store, handler Handler, pollInterval time.Duration, logger *slog.Logger) *Runner {
	if pollInterval <= 0 {
		pollInterval = protocol.DefaultPollInterval
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "worker").With(
		logging.String(logging.FieldService, handler.Name()),
	)
	return &Runner{
		store:        store,
		handler:      handler,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Run blocks serving requests until ctx is canceled. Returns nil on normal
// shutdown; initialization failures are returned immediately since a runner
// that cannot reach its slots serves nobody.
func (r *Runner) Run(ctx context.Context) error {
	ch := r.handler.Channel()
	if err := r.store.Touch(ctx, ch.RequestSlot); err != nil {
		return fmt.Errorf("init request slot: %w", err)
	}
	if err := r.store.Clear(ctx, ch.ResponseSlot); err != nil {
		return fmt.Errorf("init response slot: %w", err)
	}

	r.logger.Info("worker started",
		logging.String(logging.FieldChannel, ch.Name),
		logging.String(logging.FieldSlot, ch.RequestSlot),
		logging.Duration("poll_interval", r.pollInterval),
	)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("worker stopped", logging.String(logging.FieldChannel, ch.Name))
			return nil
		case <-ticker.C:
		}
		r.serveOnce(ctx)
	}
}

// serveOnce consumes at most one pending request.
func (r *Runner) serveOnce(ctx context.Context) {
	ch := r.handler.Channel()

	raw, err := r.store.Read(ctx, ch.RequestSlot)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Warn("request slot read failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "slot_read_failed"),
			logging.String(logging.FieldErrorHint, "check slot storage access"),
		)
		return
	}
	request := bytes.TrimSpace(raw)
	if len(request) == 0 {
		return
	}

	// Consume before processing: even a request that blows up the handler is
	// charged exactly one attempt.
	if err := r.store.Clear(ctx, ch.RequestSlot); err != nil {
		r.logger.Warn("request slot clear failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "slot_clear_failed"),
			logging.String(logging.FieldErrorHint, "check slot storage access"),
		)
		return
	}

	response := r.respond(ctx, request)
	if err := r.store.Write(ctx, ch.ResponseSlot, response); err != nil {
		r.logger.Warn("response slot write failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "slot_write_failed"),
			logging.String(logging.FieldErrorHint, "caller will observe a timeout"),
		)
		return
	}

	r.logger.Debug("request served",
		logging.String(logging.FieldChannel, ch.Name),
		logging.Int("request_bytes", len(request)),
		logging.Int("response_bytes", len(response)),
	)
}

// respond invokes the handler with panic isolation. A panicking handler
// produces an error envelope and the loop keeps serving.
func (r *Runner) respond(ctx context.Context, request []byte) (response []byte) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("handler panicked",
				logging.Any("panic", v),
				logging.String(logging.FieldEventType, "handler_panic"),
				logging.String(logging.FieldErrorHint, "report this; the request payload triggered a bug"),
			)
			response = r.handler.Fault(fmt.Sprintf("internal error: %v", v))
		}
	}()
	return r.handler.Handle(ctx, request)
}
