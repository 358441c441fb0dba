// Package services implements the pure computations behind each channel:
// random selection, text case formatting, aggregate counting, and word
// frequency extraction.
//
// Every service turns raw request bytes into complete response bytes,
// including its own envelope. Nothing here may fail loudly: malformed
// payloads, validation problems, and unexpected faults all become error
// envelopes in the dialect the channel's callers expect. The selection
// channel speaks status/value/message; the structured channels speak
// success/result/error; word frequency speaks raw delimited text.
//
// Handlers are deterministic given their inputs (selection takes an
// injectable random source) so they can be tested without a running worker.
package services
