package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/expensewise/bill-digitizer/internal/repository"
)

func TestExportRecordsXLSX(t *testing.T) {
	ctx := context.Background()
	db, err := repository.Open(ctx, repository.Config{Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jobs := repository.NewExtractJobRepository(db, nil)
	recs := repository.NewBillRecordRepository(db, nil)

	job, err := jobs.Start(ctx, "/bills/fuel.pdf", "PDF")
	require.NoError(t, err)
	require.NoError(t, recs.Insert(ctx, &repository.BillRecord{
		JobID:        job.ID,
		SourcePath:   "/bills/fuel.pdf",
		BillNumber:   "G0027238",
		BillDate:     "03/06/2025",
		BillTime:     "07:15 AM",
		BillAmount:   "8786.00",
		BillCategory: "Fuel",
	}))

	svc := NewService(recs, nil)
	out, err := svc.ExportRecordsXLSX(ctx, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	rows, err := wb.GetRows("Bills")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bill Number", rows[0][0])
	assert.Equal(t, "G0027238", rows[1][0])
	assert.Equal(t, "8786.00", rows[1][3])
	assert.Equal(t, "Fuel", rows[1][4])
}
