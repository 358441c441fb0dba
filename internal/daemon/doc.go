// Package daemon hosts the worker loops and enforces single-instance
// execution.
//
// One daemon process owns every enabled service's worker; a lock file keeps a
// second instance from double-serving the same slots, which would corrupt
// exchanges. Start launches one runner goroutine per enabled service; Stop
// cancels them and waits. Each daemon run carries a session id so its log
// lines can be isolated after the fact.
package daemon
