package fields

import (
	"regexp"
	"strings"
)

// billNumberPrefixes are stripped from the front of a bill number, scanned in
// this order, each removed at most once. B111 and Bi11 cover common OCR
// misreads of "Bill".
var billNumberPrefixes = []string{
	"BILLNO", "Invoice", "Receipt", "Bill", "No:", "No.", "B111", "Bi11", "#",
}

var reBillNumberDisallowed = regexp.MustCompile(`[^a-zA-Z0-9\-/_.]`)

// CleanBillNumber strips known label prefixes and disallowed characters from a
// bill-number value. Hyphens, slashes, underscores, and dots are preserved.
// The second return reports a suspiciously short result (3 characters or
// fewer, all digits) which often indicates an order number rather than a bill
// number; it is a diagnostic signal only, never a rejection.
func CleanBillNumber(s string) (string, bool) {
	for _, prefix := range billNumberPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(reBillNumberDisallowed.ReplaceAllString(s, ""))

	suspicious := len(s) > 0 && len(s) <= 3 && isDigits(s)
	return s, suspicious
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
