package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanBillNumber(t *testing.T) {
	tests := []struct {
		in         string
		want       string
		suspicious bool
	}{
		{in: "BILLNOG0027238", want: "G0027238"},
		// "Invoice" is stripped first, then "#" as a listed prefix; the
		// hyphen is in the allowed character set and survives.
		{in: "Invoice#AB-65", want: "AB-65"},
		{in: "Receipt No.: 885896-ORGNL", want: "885896-ORGNL"},
		{in: "Bill No: 152461188", want: "152461188"},
		{in: "#77812", want: "77812"},
		{in: "INV/2024/0071", want: "INV/2024/0071"},
		{in: "B111 4452", want: "4452"},
		{in: "No. 12", want: "12", suspicious: true},
		{in: "12A", want: "12A"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, suspicious := CleanBillNumber(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.suspicious, suspicious)
		})
	}
}

func TestCleanBillNumberStripsEachPrefixOnce(t *testing.T) {
	// "Receipt" is checked before "No." in the prefix list, so both go; the
	// remaining digits are untouched.
	got, suspicious := CleanBillNumber("ReceiptNo.9981123")
	assert.Equal(t, "9981123", got)
	assert.False(t, suspicious)
}
