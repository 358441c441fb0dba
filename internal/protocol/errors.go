package protocol

import "errors"

var (
	// ErrTimeout reports that no parseable response arrived within the
	// exchange timeout. Callers treat it as "service unavailable" and fall
	// back; the worker may still write a response later, which the next
	// exchange discards.
	ErrTimeout = errors.New("exchange timeout")

	// ErrMalformed reports response content that is not a valid payload for
	// the channel encoding. The exchange stops immediately; retrying would
	// re-read the same poisoned content.
	ErrMalformed = errors.New("malformed response payload")

	// ErrChannelBusy reports that the per-channel lock is held by another
	// caller. Only returned when channel locking is enabled.
	ErrChannelBusy = errors.New("channel busy")
)
