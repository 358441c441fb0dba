package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"shuttle/internal/protocol"
)

// WordFrequency extracts the most frequent tokens from raw text. Unlike the
// structured services it speaks plain text on both slots: the request is the
// document itself, the response one "word<delimiter>count" line per token,
// most frequent first.
type WordFrequency struct {
	topN      int
	delimiter string
}

// NewWordFrequency constructs the word-frequency service. topN bounds the
// number of output lines; delimiter separates word and count in each line.
func NewWordFrequency(topN int, delimiter string) *WordFrequency {
	if topN <= 0 {
		topN = 10
	}
	if delimiter == "" {
		delimiter = ","
	}
	return &WordFrequency{topN: topN, delimiter: delimiter}
}

func (w *WordFrequency) Name() string { return protocol.WordFrequency.Name }

func (w *WordFrequency) Channel() protocol.Channel { return protocol.WordFrequency }

// Handle tokenizes the text and answers with the ranked frequency list. Ties
// rank lexicographically so output is deterministic.
func (w *WordFrequency) Handle(_ context.Context, request []byte) []byte {
	counts := make(map[string]int)
	for _, token := range tokenize(string(request)) {
		counts[token]++
	}
	if len(counts) == 0 {
		return nil
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > w.topN {
		words = words[:w.topN]
	}

	var b strings.Builder
	for i, word := range words {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(word)
		b.WriteString(w.delimiter)
		b.WriteString(strconv.Itoa(counts[word]))
	}
	return []byte(b.String())
}

// Fault has no envelope on a raw text channel; an empty response leaves the
// caller to its timeout fallback.
func (w *WordFrequency) Fault(string) []byte { return nil }

// tokenize lowercases the text and splits it into maximal runs of letters,
// digits, and interior apostrophes.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, "'")
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
