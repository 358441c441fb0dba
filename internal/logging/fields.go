package logging

// Standardized attribute keys shared across packages.
const (
	// FieldComponent identifies the subsystem emitting the log line.
	FieldComponent = "component"
	// FieldService names the worker service handling an exchange.
	FieldService = "service"
	// FieldChannel names the slot channel involved in an exchange.
	FieldChannel = "channel"
	// FieldSlot names the individual slot being read or written.
	FieldSlot = "slot"
	// FieldSessionID tags all logs of one daemon run.
	FieldSessionID = "session_id"
	// FieldEventType classifies notable events for log filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step when something goes wrong.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)
