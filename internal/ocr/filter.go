package ocr

import "github.com/expensewise/bill-digitizer/internal/layout"

// DefaultConfidenceFloor is the minimum recognition confidence a detection
// needs to participate in layout reconstruction.
const DefaultConfidenceFloor = 0.6

// FilterTokens converts a page's detections into layout tokens, dropping
// every detection below the confidence floor. Low-confidence detections are
// noise, not errors; they are discarded silently.
func FilterTokens(page Page, floor float64) []layout.Token {
	tokens := make([]layout.Token, 0, len(page.Detections))
	for _, det := range page.Detections {
		if det.Confidence < floor {
			continue
		}
		tokens = append(tokens, layout.NewToken(det.Box, det.Text, det.Confidence))
	}
	return tokens
}
