package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDynamicWidths(t *testing.T) {
	tokens := []Token{
		{Text: "AB", Width: 12},   // 6 per char
		{Text: "ABCD", Width: 20}, // 5 per char
		{Text: "x", Width: 99},    // single char, ignored
	}
	charWidth, spaceWidth := DynamicWidths(tokens)
	assert.InDelta(t, 5.5, charWidth, 1e-9)
	assert.InDelta(t, 4.95, spaceWidth, 1e-9)
}

func TestDynamicWidthsDefault(t *testing.T) {
	charWidth, spaceWidth := DynamicWidths([]Token{{Text: "x", Width: 4}})
	assert.Equal(t, 6.0, charWidth)
	assert.Equal(t, 6.0, spaceWidth)
}

func TestRenderLineLeadingIndent(t *testing.T) {
	line := []Token{{Text: "TOTAL", X: 12, Width: 30}}
	assert.Equal(t, "  TOTAL", RenderLine(line, 6, 6))
}

func TestRenderLineGaps(t *testing.T) {
	tests := []struct {
		name string
		line []Token
		want string
	}{
		{
			name: "proportional gap",
			line: []Token{{Text: "Qty", X: 0, Width: 18}, {Text: "1", X: 48, Width: 6}},
			want: "Qty     1", // gap 30 / spaceWidth 6 = 5 spaces
		},
		{
			name: "small positive gap still gets one space",
			line: []Token{{Text: "a", X: 0, Width: 6}, {Text: "b", X: 8, Width: 6}},
			want: "a b",
		},
		{
			name: "overlapping tokens get exactly one space",
			line: []Token{{Text: "a", X: 0, Width: 10}, {Text: "b", X: 4, Width: 6}},
			want: "a b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderLine(tt.line, 6, 6))
		})
	}
}

func TestRenderDocumentJoinsLines(t *testing.T) {
	lines := [][]Token{
		{{Text: "STORE", X: 0, Width: 30}},
		{{Text: "TOTAL", X: 0, Width: 30}, {Text: "9.99", X: 60, Width: 24}},
	}
	got := RenderDocument(lines, 6, 6)
	assert.Equal(t, "STORE\nTOTAL     9.99", got)
}
