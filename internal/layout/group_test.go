package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineTexts(lines [][]Token) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		for _, tok := range line {
			out[i] = append(out[i], tok.Text)
		}
	}
	return out
}

func TestGroupLinesEmptyInput(t *testing.T) {
	assert.Empty(t, GroupLines(nil, 10))
	assert.Empty(t, GroupLines([]Token{}, 10))
}

func TestGroupLinesByThreshold(t *testing.T) {
	a := mkToken(0, 10, 10)
	a.Text = "A"
	b := mkToken(40, 11, 10)
	b.Text = "B"
	c := mkToken(0, 40, 10)
	c.Text = "C"

	lines := GroupLines([]Token{c, a, b}, 10)
	require.Len(t, lines, 2)
	assert.Equal(t, [][]string{{"A", "B"}, {"C"}}, lineTexts(lines))
}

func TestGroupLinesThresholdWinsRegardlessOfOverlap(t *testing.T) {
	// Zero heights make the overlap ratio 0; the y-distance alone must join.
	a := Token{Text: "A", X: 0, Y: 10}
	b := Token{Text: "B", X: 20, Y: 14}

	lines := GroupLines([]Token{a, b}, 5)
	require.Len(t, lines, 1)
	assert.Equal(t, [][]string{{"A", "B"}}, lineTexts(lines))
}

func TestGroupLinesOverlapJoinsDistantCenters(t *testing.T) {
	// Centers 8 apart with threshold 5, but boxes share 12 of 20 units of
	// height: overlap ratio 0.6 keeps them on one line.
	a := mkToken(0, 10, 20)
	a.Text = "A"
	b := mkToken(30, 18, 20)
	b.Text = "B"

	lines := GroupLines([]Token{a, b}, 5)
	require.Len(t, lines, 1)
	assert.Equal(t, [][]string{{"A", "B"}}, lineTexts(lines))
}

func TestGroupLinesOrdering(t *testing.T) {
	tokens := []Token{
		{Text: "right", X: 80, Y: 50},
		{Text: "left", X: 0, Y: 51},
		{Text: "mid", X: 40, Y: 49},
		{Text: "header", X: 10, Y: 5},
	}

	lines := GroupLines(tokens, 10)
	require.Len(t, lines, 2)
	// Lines sorted by ascending y, tokens within a line by ascending x.
	assert.Equal(t, [][]string{{"header"}, {"left", "mid", "right"}}, lineTexts(lines))
}

func TestReconstructEndToEnd(t *testing.T) {
	mk := func(text string, x, y float64) Token {
		tok := mkToken(x, y, 10)
		tok.Text = text
		tok.Width = 10
		tok.Confidence = 0.9
		return tok
	}
	tokens := []Token{mk("A", 0, 10), mk("B", 40, 11), mk("C", 0, 40)}

	// Single-character tokens give no width samples, so the default 6-unit
	// spacing applies: B sits round((40-10)/6) = 5 spaces after A.
	got := Reconstruct(tokens)
	assert.Equal(t, "A     B\nC", got)
}
