package textextract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensewise/bill-digitizer/constants"
	"github.com/expensewise/bill-digitizer/internal/layout"
	"github.com/expensewise/bill-digitizer/internal/ocr"
	"github.com/expensewise/bill-digitizer/internal/repository"
)

type stubRecognizer struct {
	pages []ocr.Page
	err   error
}

func (s stubRecognizer) Recognize(_ context.Context, _ string, _ []byte) ([]ocr.Page, error) {
	return s.pages, s.err
}

func setupPipeline(t *testing.T, rec ocr.Recognizer) (*Pipeline, repository.ExtractJobRepository) {
	t.Helper()
	db, err := repository.Open(context.Background(), repository.Config{Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	jobs := repository.NewExtractJobRepository(db, nil)
	return NewPipeline(jobs, ocr.NewExtractor(ocr.Config{}, rec, nil), nil), jobs
}

func TestRunRejectsUnsupportedExtension(t *testing.T) {
	p, _ := setupPipeline(t, stubRecognizer{})
	_, _, err := p.Run(context.Background(), "/bills/bill.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRunPersistsReconstructedText(t *testing.T) {
	pages := []ocr.Page{{Detections: []ocr.Detection{
		{
			Box:        [4]layout.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 0, Y: 10}},
			Text:       "TOTAL",
			Confidence: 0.95,
		},
	}}}
	p, jobs := setupPipeline(t, stubRecognizer{pages: pages})

	path := filepath.Join(t.TempDir(), "bill.png")
	require.NoError(t, os.WriteFile(path, []byte("not-a-real-png"), 0o644))

	jobID, res, err := p.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", res.Text)

	job, err := jobs.GetByID(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusOCROK, job.Status)
	assert.Equal(t, "TOTAL", job.OCRText)
}

func TestRunMarksJobFailedOnMissingFile(t *testing.T) {
	p, jobs := setupPipeline(t, stubRecognizer{})

	jobID, _, err := p.Run(context.Background(), "/does/not/exist/bill.pdf")
	require.Error(t, err)

	job, err := jobs.GetByID(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, job.Status)
	assert.NotEmpty(t, job.ErrorMessage)
}
