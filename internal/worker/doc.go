// Package worker runs the service side of a channel: a single-threaded loop
// that polls the request slot, consumes pending requests, and writes response
// envelopes.
//
// The loop consumes a request by clearing its slot before processing, so a
// payload that cannot be parsed is charged exactly one attempt instead of
// being reprocessed forever. Handler faults of any kind, panics included, are
// converted to error envelopes at the loop boundary; only context
// cancellation stops a runner. Every caller exchange blocks on this loop, so
// staying alive beats being right.
package worker
