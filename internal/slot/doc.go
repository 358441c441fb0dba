// Package slot provides named durable byte slots, the only medium callers and
// workers share.
//
// A slot holds zero or one pending message. It is created empty on first use,
// overwritten whole on every write, and never deleted. Three backends exist:
// file (one file per slot, atomic rename writes), sqlite (a single slots
// table in WAL mode), and memory (mutex-guarded map for deterministic tests).
//
// Readers must treat whitespace-only content as empty; the protocol layer owns
// that convention so the backends stay byte-oriented.
package slot
