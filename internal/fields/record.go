package fields

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// NormalizedBillRecord is the final typed, validated output of the field
// pipeline. Bill_Amount always carries exactly two fractional digits;
// Bill_Category is always a member of the fixed taxonomy.
type NormalizedBillRecord struct {
	BillNumber   string `json:"Bill_Number"`
	Date         string `json:"Date"`
	BillAmount   string `json:"Bill_Amount"`
	Time         string `json:"Time"`
	BillCategory string `json:"Bill_Category"`
}

// Normalizer converts raw extractions into normalized records.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// dateFormats are tried in order when reformatting a date to mm/dd/yyyy.
var dateFormats = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Normalize applies bill-number cleaning, amount normalization, category
// classification and best-effort date/time formatting to a raw extraction.
// The returned warnings are non-blocking diagnostics (e.g. a suspiciously
// short bill number); the record is always usable.
func (n *Normalizer) Normalize(raw RawExtraction) (NormalizedBillRecord, []string) {
	var warnings []string

	rec := NormalizedBillRecord{
		Date: stringField(raw, "Date"),
		Time: stringField(raw, "Time"),
	}

	if number, ok := raw["Bill_Number"]; ok {
		cleaned, suspicious := CleanBillNumber(asString(number))
		rec.BillNumber = cleaned
		if suspicious {
			n.logger.Warn("fields.billnumber.suspiciously_short", "bill_number", cleaned)
			warnings = append(warnings, fmt.Sprintf("suspiciously short bill number: %s (may be an order number)", cleaned))
		}
	}

	rec.Date = normalizeDate(rec.Date)
	rec.Time = normalizeTime(rec.Time)
	rec.BillAmount = NormalizeAmount(raw["Bill_Amount"], n.logger)
	rec.BillCategory = string(Classify(stringField(raw, "Bill_Category"), rec.Time, n.logger))

	return rec, warnings
}

// normalizeDate reformats a date to mm/dd/yyyy with leading zeros where it
// can; values it cannot interpret are passed through unchanged.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.Format("01/02/2006")
		}
	}
	return s
}

// normalizeTime reformats a time of day to "hh:mm AM"/"hh:mm PM"; values it
// cannot interpret are passed through, and empty stays empty.
func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, ok := parseClock(s); ok {
		return t.Format("03:04 PM")
	}
	return s
}

func stringField(raw RawExtraction, key string) string {
	if v, ok := raw[key]; ok {
		return strings.TrimSpace(asString(v))
	}
	return ""
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
