package fields

import (
	"log/slog"
	"strings"
	"time"

	"github.com/agext/levenshtein"

	"github.com/expensewise/bill-digitizer/constants"
)

// fuzzyCutoff is the minimum similarity ratio for a taxonomy match.
const fuzzyCutoff = 0.3

// Meal windows by hour of day. Anything outside them (23:00-05:00) is Dinner.
const (
	breakfastStartHour = 5
	lunchStartHour     = 11
	snacksStartHour    = 16
	dinnerStartHour    = 19
	dinnerEndHour      = 23
)

var amPMFormats = []string{"3:04 PM", "3:04PM", "3.04 PM", "3.04PM"}

// Classify maps a free-text category (and optional time of day) onto the
// fixed taxonomy. "Food" is reported inconsistently by the upstream model, so
// any category containing "food" is sub-classified into a meal by time of day;
// time is a stronger signal there than text similarity. Everything else is
// fuzzy-matched against the taxonomy, falling back to General below the
// cutoff.
func Classify(category, timeOfDay string, logger *slog.Logger) constants.Category {
	if logger == nil {
		logger = slog.Default()
	}

	normalized := strings.ToLower(strings.TrimSpace(category))
	if strings.Contains(normalized, "food") {
		return classifyMeal(timeOfDay, logger)
	}

	best := constants.General
	bestScore := 0.0
	for _, cat := range constants.AllCategories() {
		score := levenshtein.Similarity(normalized, strings.ToLower(string(cat)), levenshtein.NewParams())
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	if bestScore < fuzzyCutoff {
		return constants.General
	}
	return best
}

// classifyMeal picks the meal category for a food bill from its time of day.
// A missing or unparsable time defaults to Dinner.
func classifyMeal(timeOfDay string, logger *slog.Logger) constants.Category {
	if strings.TrimSpace(timeOfDay) == "" {
		return constants.Dinner
	}
	parsed, ok := parseClock(timeOfDay)
	if !ok {
		logger.Warn("fields.classify.unparsable_time", "time", timeOfDay)
		return constants.Dinner
	}

	switch hour := parsed.Hour(); {
	case hour >= breakfastStartHour && hour < lunchStartHour:
		return constants.Breakfast
	case hour >= lunchStartHour && hour < snacksStartHour:
		return constants.Lunch
	case hour >= snacksStartHour && hour < dinnerStartHour:
		return constants.EveningSnacks
	default:
		return constants.Dinner
	}
}

// parseClock parses a wall-clock string. AM/PM-bearing values use the
// 12-hour formats; everything else is read as 24-hour HH:MM.
func parseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	if strings.Contains(upper, "AM") || strings.Contains(upper, "PM") {
		for _, format := range amPMFormats {
			if t, err := time.Parse(format, upper); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
