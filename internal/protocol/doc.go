// Package protocol defines the slot channels and the caller side of an
// exchange.
//
// A channel is a named pair of slots: the caller writes a request into one and
// polls the other for a response. There is no correlation id and no
// notification primitive; one exchange at a time per channel is a convention,
// optionally hardened with a per-channel lock file. Exchange implements the
// caller loop: discard any stale response, publish the request whole, then
// poll until parseable content arrives or the timeout elapses.
//
// The four channel definitions mirror the slot names services watch; both
// sides must import them from here so nobody drifts on naming.
package protocol
