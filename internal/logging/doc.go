// Package logging constructs the slog loggers used by the daemon and CLI.
//
// It provides console and JSON handlers, attribute helpers shared across
// packages, and the standardized field keys (component, channel, event_type,
// error_hint) that keep worker and exchange logs greppable. Warnings carry an
// event type and a hint so operators can act on them without reading code.
//
// Obtain loggers through New or NewFromConfig so every component emits the
// same format and honours the configured level.
package logging
