package fields

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// zeroAmount is the safe default for any amount that cannot be interpreted.
const zeroAmount = "0.00"

var reNonAmount = regexp.MustCompile(`[^0-9.]`)

// NormalizeAmount coerces an arbitrary bill-amount representation into a
// decimal string with exactly two fractional digits. Currency symbols, commas
// and other noise are stripped from string inputs. Empty values, the literal
// "Error" (any case), and unparsable inputs all become "0.00" with a logged
// warning; no error is ever returned. Rounding is round-half-to-even.
func NormalizeAmount(v any, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	switch amount := v.(type) {
	case nil:
		logger.Warn("fields.amount.missing")
		return zeroAmount
	case float64:
		return formatAmount(amount)
	case int:
		return formatAmount(float64(amount))
	case json.Number:
		f, err := amount.Float64()
		if err != nil {
			logger.Warn("fields.amount.unparsable", "value", amount.String(), "error", err)
			return zeroAmount
		}
		return formatAmount(f)
	case string:
		s := strings.TrimSpace(amount)
		if s == "" || strings.EqualFold(s, "error") {
			logger.Warn("fields.amount.invalid", "value", amount)
			return zeroAmount
		}
		cleaned := reNonAmount.ReplaceAllString(s, "")
		if cleaned == "" {
			return zeroAmount
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			logger.Warn("fields.amount.unparsable", "value", amount, "error", err)
			return zeroAmount
		}
		return formatAmount(f)
	default:
		logger.Warn("fields.amount.unexpected_type", "value", fmt.Sprintf("%v", v))
		return zeroAmount
	}
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
