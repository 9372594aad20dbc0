package layout

import (
	"math"
	"sort"
)

// minOverlapRatio is the fraction of the shorter token's height two tokens
// must share vertically to be considered part of the same line even when
// their centers are further apart than the threshold.
const minOverlapRatio = 0.3

// GroupLines partitions tokens into ordered text lines. Tokens are scanned in
// ascending vertical-center order; a token joins the current line when its
// y-distance to the previously scanned token is within threshold, or when the
// two boxes overlap vertically by more than minOverlapRatio of the shorter
// box. Output lines are ordered by the y of their first token; tokens within a
// line are ordered by ascending x. Empty input yields no lines.
func GroupLines(tokens []Token, threshold float64) [][]Token {
	if len(tokens) == 0 {
		return nil
	}

	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y < sorted[j].Y })

	var lines [][]Token
	current := []Token{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		cur, prev := sorted[i], sorted[i-1]

		yDistance := math.Abs(cur.Y - prev.Y)
		overlap := math.Min(prev.BottomY, cur.BottomY) - math.Max(prev.TopY, cur.TopY)
		minHeight := math.Min(cur.Height, prev.Height)
		overlapRatio := 0.0
		if minHeight > 0 {
			overlapRatio = overlap / minHeight
		}

		if yDistance <= threshold || overlapRatio > minOverlapRatio {
			current = append(current, cur)
		} else {
			sortByX(current)
			lines = append(lines, current)
			current = []Token{cur}
		}
	}

	sortByX(current)
	lines = append(lines, current)
	return lines
}

func sortByX(line []Token) {
	sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
}
