// Package client offers typed access to the slot services: one method per
// remote operation, all blocking on a slot exchange.
//
// Methods return protocol.ErrTimeout when no worker answers and *RemoteError
// when the worker answers with an error envelope, so callers can distinguish
// "service down, use a fallback" from "service rejected my request". TopWords
// follows the historical contract of the words channel and degrades to an
// empty string on timeout instead of failing.
package client
