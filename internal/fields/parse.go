// Package fields turns a loosely-structured model reply into a strictly-typed,
// validated bill record: JSON extraction, bill-number cleaning, amount
// normalization, and category classification.
package fields

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/expensewise/bill-digitizer/internal/common"
)

var (
	reFencedJSON  = regexp.MustCompile("(?s)```json\n(.*?)\n```")
	reLineComment = regexp.MustCompile(`(?m)//.*$`)
)

// RawExtraction is the untyped field mapping decoded from a model reply.
// It is transient: consumed once by the normalizer.
type RawExtraction map[string]any

// MalformedResponseError reports a reply that is not valid JSON after cleanup.
// This is terminal for the document; the cleaned text is carried for diagnosis.
type MalformedResponseError struct {
	RawResponse string
	Cause       error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("invalid JSON format: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return common.ErrMalformedResponse
}

// Sentinel returns the interchange shape reported downstream for a malformed
// reply, in place of a field mapping.
func (e *MalformedResponseError) Sentinel() RawExtraction {
	return RawExtraction{
		"error":        "Invalid JSON format",
		"raw_response": e.RawResponse,
	}
}

// ParseResponse extracts the JSON payload from a raw model reply. A fenced
// ```json block is preferred when present; otherwise the whole reply is
// treated as candidate JSON. Line-trailing // comments are stripped before
// decoding. A decode failure returns a *MalformedResponseError; it is never
// retried here.
func ParseResponse(raw string) (RawExtraction, error) {
	candidate := strings.TrimSpace(raw)
	if m := reFencedJSON.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	cleaned := strings.TrimSpace(reLineComment.ReplaceAllString(candidate, ""))

	var parsed RawExtraction
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &MalformedResponseError{RawResponse: cleaned, Cause: err}
	}
	return parsed, nil
}
