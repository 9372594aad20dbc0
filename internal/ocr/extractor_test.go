package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensewise/bill-digitizer/internal/common"
	"github.com/expensewise/bill-digitizer/internal/layout"
)

type stubRecognizer struct {
	pages []Page
	err   error
}

func (s stubRecognizer) Recognize(_ context.Context, _ string, _ []byte) ([]Page, error) {
	return s.pages, s.err
}

func boxAt(x, y, w, h float64) [4]layout.Point {
	return [4]layout.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, stubRecognizer{}, nil)

	_, err := e.Extract(context.Background(), "/tmp/bill.docx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnsupportedInput))
}

func TestExtractBytesJoinsPages(t *testing.T) {
	pages := []Page{
		{Detections: []Detection{
			{Box: boxAt(0, 0, 30, 10), Text: "STORE", Confidence: 0.9},
		}},
		{Detections: []Detection{
			{Box: boxAt(0, 0, 30, 10), Text: "TOTAL", Confidence: 0.9},
		}},
	}
	e := NewExtractor(Config{}, stubRecognizer{pages: pages}, nil)

	res, err := e.ExtractBytes(context.Background(), "bill.pdf", "PDF", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "STORE\nTOTAL", res.Text)
	assert.Equal(t, 2, res.TokenCount)
}

func TestExtractBytesFiltersBeforeLayout(t *testing.T) {
	pages := []Page{{Detections: []Detection{
		{Box: boxAt(0, 0, 30, 10), Text: "KEEP", Confidence: 0.9},
		{Box: boxAt(40, 0, 30, 10), Text: "DROP", Confidence: 0.2},
	}}}
	e := NewExtractor(Config{}, stubRecognizer{pages: pages}, nil)

	res, err := e.ExtractBytes(context.Background(), "bill.png", "IMAGE", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TokenCount)
	assert.NotContains(t, res.Text, "DROP")
}

func TestExtractBytesMaxPages(t *testing.T) {
	pages := []Page{{}, {}, {}}
	e := NewExtractor(Config{MaxPages: 2}, stubRecognizer{pages: pages}, nil)

	res, err := e.ExtractBytes(context.Background(), "bill.pdf", "PDF", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "truncated")
}

func TestExtractReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bill.png")
	require.NoError(t, os.WriteFile(path, []byte("not-a-real-png"), 0o644))

	pages := []Page{{Detections: []Detection{
		{Box: boxAt(0, 0, 30, 10), Text: "HELLO", Confidence: 0.9},
	}}}
	e := NewExtractor(Config{}, stubRecognizer{pages: pages}, nil)

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "IMAGE", res.SourceType)
	assert.Equal(t, "HELLO", res.Text)
}
