// Package ocr adapts the remote OCR collaborator: it filters raw detections
// by confidence and feeds the survivors through the layout engine to produce
// reconstructed document text.
package ocr

import (
	"context"

	"github.com/expensewise/bill-digitizer/internal/layout"
)

// Detection is one recognized text fragment as returned by the OCR service:
// a 4-point bounding polygon, the recognized text, and a confidence in [0,1].
type Detection struct {
	Box        [4]layout.Point `json:"box"`
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
}

// Page is the full set of detections for one image or PDF page.
type Page struct {
	Detections []Detection `json:"detections"`
}

// Recognizer is the OCR collaborator contract. Given a named blob of image or
// PDF bytes it returns one Page per rendered page. Timeouts are the
// implementation's responsibility.
type Recognizer interface {
	Recognize(ctx context.Context, filename string, data []byte) ([]Page, error)
}
