package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	defaultCharWidth = 6.0
	spaceWidthRatio  = 0.9
)

// DynamicWidths computes the characteristic character width and space width
// for a document: the median of width/len(text) over multi-character tokens.
// Both default to 6 units when no multi-character token exists.
func DynamicWidths(tokens []Token) (charWidth, spaceWidth float64) {
	var ratios []float64
	for _, t := range tokens {
		if n := utf8.RuneCountInString(t.Text); n > 1 {
			ratios = append(ratios, t.Width/float64(n))
		}
	}
	if len(ratios) == 0 {
		return defaultCharWidth, defaultCharWidth
	}
	cw := median(ratios)
	return cw, cw * spaceWidthRatio
}

// RenderLine renders one line's tokens into a single string with spacing
// proportional to the geometric gaps between tokens. The first token is
// indented by round(x / spaceWidth) spaces; each subsequent token gets
// max(1, round(gap / spaceWidth)) spaces when a positive gap exists, else
// exactly one space.
func RenderLine(line []Token, charWidth, spaceWidth float64) string {
	var b strings.Builder
	prevX, prevWidth := 0.0, 0.0

	for i, tok := range line {
		width := tok.Width
		if width == 0 {
			width = float64(utf8.RuneCountInString(tok.Text)) * charWidth
		}

		if i == 0 {
			if n := int(math.Round(tok.X / spaceWidth)); n > 0 {
				b.WriteString(strings.Repeat(" ", n))
			}
		} else {
			spaces := 1
			if gap := tok.X - (prevX + prevWidth); gap > 0 {
				if n := int(math.Round(gap / spaceWidth)); n > 1 {
					spaces = n
				}
			}
			b.WriteString(strings.Repeat(" ", spaces))
		}

		b.WriteString(tok.Text)
		prevX, prevWidth = tok.X, width
	}
	return b.String()
}

// RenderDocument renders grouped lines into plain text, one reconstructed
// line per output line, in grouping order.
func RenderDocument(lines [][]Token, charWidth, spaceWidth float64) string {
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = RenderLine(line, charWidth, spaceWidth)
	}
	return strings.Join(rendered, "\n")
}

// Reconstruct runs the full layout pipeline over filtered tokens: adaptive
// threshold estimation, line grouping, and spacing-aware rendering.
func Reconstruct(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	threshold := AdaptiveYThreshold(tokens)
	lines := GroupLines(tokens, threshold)
	charWidth, spaceWidth := DynamicWidths(tokens)
	return RenderDocument(lines, charWidth, spaceWidth)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
