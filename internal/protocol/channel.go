package protocol

// Encoding describes how payloads on a channel are framed.
type Encoding int

const (
	// EncodingJSON carries one UTF-8 JSON document per message.
	EncodingJSON Encoding = iota
	// EncodingText carries raw text; any non-empty content is a message.
	EncodingText
)

// Channel names one request/response slot pair serving a single service.
type Channel struct {
	Name         string
	RequestSlot  string
	ResponseSlot string
	Encoding     Encoding
}

// The fixed channel set. Slot names keep their historical file names so the
// file backend stays wire-compatible with existing deployments.
var (
	Selection = Channel{
		Name:         "selection",
		RequestSlot:  "rng_request.txt",
		ResponseSlot: "rng_response.txt",
		Encoding:     EncodingJSON,
	}
	CaseFormat = Channel{
		Name:         "case-format",
		RequestSlot:  "text_formatter_request.txt",
		ResponseSlot: "text_formatter_response.txt",
		Encoding:     EncodingJSON,
	}
	AggregateCount = Channel{
		Name:         "aggregate-count",
		RequestSlot:  "data_counter_request.txt",
		ResponseSlot: "data_counter_response.txt",
		Encoding:     EncodingJSON,
	}
	WordFrequency = Channel{
		Name:         "word-frequency",
		RequestSlot:  "input.txt",
		ResponseSlot: "output.csv",
		Encoding:     EncodingText,
	}
)

// Channels returns every defined channel in display order.
func Channels() []Channel {
	return []Channel{Selection, CaseFormat, AggregateCount, WordFrequency}
}
