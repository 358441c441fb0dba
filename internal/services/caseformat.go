package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shuttle/internal/protocol"
)

// CaseFormat applies one of four deterministic text transforms: upper, lower,
// title, or clean (strip everything that is not a letter, digit, or space).
type CaseFormat struct{}

// NewCaseFormat constructs the case-format service.
func NewCaseFormat() *CaseFormat { return &CaseFormat{} }

func (c *CaseFormat) Name() string { return protocol.CaseFormat.Name }

func (c *CaseFormat) Channel() protocol.Channel { return protocol.CaseFormat }

type caseFormatRequest struct {
	Text   *string `json:"text"`
	Format string  `json:"format"`
}

// Handle parses {"text":..., "format":...} and answers with the transformed text.
func (c *CaseFormat) Handle(_ context.Context, request []byte) []byte {
	var req caseFormatRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return c.Fault(invalidPayloadMessage)
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		return c.Fault("Missing 'format' field. Use 'upper', 'lower', 'title', or 'clean'.")
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}

	result, err := formatText(text, format)
	if err != nil {
		return c.Fault(err.Error())
	}
	return successResult(result)
}

// Fault reports an error in the success/result/error dialect.
func (c *CaseFormat) Fault(message string) []byte {
	return failureResult(message)
}

func formatText(text, format string) (string, error) {
	switch format {
	case "upper":
		return strings.ToUpper(text), nil
	case "lower":
		return strings.ToLower(text), nil
	case "title":
		return cases.Title(language.Und).String(text), nil
	case "clean":
		return cleanText(text), nil
	default:
		return "", fmt.Errorf("Invalid format type '%s'. Use 'upper', 'lower', 'title', or 'clean'.", format)
	}
}

// cleanText keeps letters, digits, and whitespace, dropping everything else.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
