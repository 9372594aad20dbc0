// Package layout reconstructs reading-order text from an unordered bag of
// positioned OCR tokens. All functions are pure transformations over in-memory
// token slices; geometry problems degrade to defaults instead of erroring.
package layout

import "math"

// Point is one corner of a detection's bounding polygon.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Token is one OCR-detected text fragment with its derived geometry.
// Corner order follows the detector convention: top-left, top-right,
// bottom-right, bottom-left. Derived fields are computed once and never
// mutated afterwards.
type Token struct {
	Text       string
	X          float64 // left edge
	Y          float64 // vertical center
	TopY       float64
	BottomY    float64
	Width      float64
	Height     float64
	Confidence float64
	Box        [4]Point
}

// NewToken derives a Token from a 4-corner bounding polygon.
func NewToken(box [4]Point, text string, confidence float64) Token {
	width := math.Max(math.Abs(box[1].X-box[0].X), math.Abs(box[2].X-box[3].X))
	height := math.Max(math.Abs(box[2].Y-box[0].Y), math.Abs(box[3].Y-box[1].Y))
	return Token{
		Text:       text,
		X:          box[0].X,
		Y:          (box[0].Y + box[1].Y + box[2].Y + box[3].Y) / 4,
		TopY:       math.Min(box[0].Y, box[1].Y),
		BottomY:    math.Max(box[2].Y, box[3].Y),
		Width:      width,
		Height:     height,
		Confidence: confidence,
		Box:        box,
	}
}
