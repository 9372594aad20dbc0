package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFullRecord(t *testing.T) {
	n := NewNormalizer(nil)
	raw := RawExtraction{
		"Bill_Number":   "BILLNOG0027238",
		"Date":          "3/6/2025",
		"Time":          "20:30",
		"Bill_Amount":   "₹1,882",
		"Bill_Category": "Food",
	}

	rec, warnings := n.Normalize(raw)
	assert.Empty(t, warnings)
	assert.Equal(t, "G0027238", rec.BillNumber)
	assert.Equal(t, "03/06/2025", rec.Date)
	assert.Equal(t, "08:30 PM", rec.Time)
	assert.Equal(t, "1882.00", rec.BillAmount)
	assert.Equal(t, "Dinner", rec.BillCategory)
}

func TestNormalizeDefaults(t *testing.T) {
	n := NewNormalizer(nil)

	rec, warnings := n.Normalize(RawExtraction{})
	assert.Empty(t, warnings)
	assert.Equal(t, "", rec.BillNumber)
	assert.Equal(t, "", rec.Date)
	assert.Equal(t, "", rec.Time)
	assert.Equal(t, "0.00", rec.BillAmount)
	assert.Equal(t, "General", rec.BillCategory)
}

func TestNormalizeSuspiciousBillNumberWarns(t *testing.T) {
	n := NewNormalizer(nil)
	raw := RawExtraction{
		"Bill_Number": "No. 12",
		"Bill_Amount": 250.0,
	}

	rec, warnings := n.Normalize(raw)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "suspiciously short")
	// The value is still returned; the flag never rejects.
	assert.Equal(t, "12", rec.BillNumber)
	assert.Equal(t, "250.00", rec.BillAmount)
}

func TestNormalizeDatePassthrough(t *testing.T) {
	n := NewNormalizer(nil)
	rec, _ := n.Normalize(RawExtraction{"Date": "sometime last week"})
	assert.Equal(t, "sometime last week", rec.Date)
}

func TestNormalizeErrorAmount(t *testing.T) {
	n := NewNormalizer(nil)
	rec, _ := n.Normalize(RawExtraction{"Bill_Amount": "Error", "Bill_Category": "fuel"})
	assert.Equal(t, "0.00", rec.BillAmount)
	assert.Equal(t, "Fuel", rec.BillCategory)
}
