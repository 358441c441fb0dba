package services

import "encoding/json"

// invalidPayloadMessage is the canonical reason written when request content
// cannot be parsed at all.
const invalidPayloadMessage = "invalid payload"

// resultEnvelope is the response wrapper used by the case-format channel and
// as the error shape for every success-dialect channel.
type resultEnvelope struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Error   string `json:"error"`
}

func successResult(result string) []byte {
	return mustMarshal(resultEnvelope{Success: true, Result: result})
}

func failureResult(message string) []byte {
	return mustMarshal(resultEnvelope{Success: false, Error: message})
}

// mustMarshal serializes envelope values built entirely from plain structs;
// a failure here is a programming error, so fall back to a hand-built error
// document rather than panic inside a worker loop.
func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"success":false,"error":"internal encoding failure"}`)
	}
	return data
}
