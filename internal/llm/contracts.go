package llm

import (
	"context"

	"github.com/expensewise/bill-digitizer/internal/fields"
)

// ExtractRequest carries the reconstructed document text and prompt hints to
// the model.
type ExtractRequest struct {
	OCRText       string
	Configuration string // prompt template name, e.g. "process-bill"
	FilenameHint  string
}

// FieldExtractor is the interface the parse pipeline depends on. It returns
// the loosely-typed field mapping plus the raw reply content for audit. A
// malformed (non-JSON) reply is returned as a *fields.MalformedResponseError.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (fields.RawExtraction, []byte, error)
}
