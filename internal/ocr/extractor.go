package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/expensewise/bill-digitizer/constants"
	"github.com/expensewise/bill-digitizer/internal/common"
	"github.com/expensewise/bill-digitizer/internal/layout"
)

// Config holds thresholds and limits for text extraction.
type Config struct {
	ConfidenceFloor float64 // default DefaultConfidenceFloor
	MaxPages        int     // 0 = no limit
}

// ExtractionResult summarizes one reconstruction run.
type ExtractionResult struct {
	Text       string
	Pages      int
	TokenCount int // tokens surviving the confidence filter
	SourceType string // constants.PDF | constants.IMAGE
	Duration   time.Duration
	Warnings   []string
}

// Extractor runs the full stage-1 pipeline for a document: recognize,
// filter, group, render. Pages are reconstructed independently and joined
// with newlines.
type Extractor struct {
	cfg        Config
	recognizer Recognizer
	logger     *slog.Logger
}

func NewExtractor(cfg Config, recognizer Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ConfidenceFloor <= 0 {
		cfg.ConfidenceFloor = DefaultConfidenceFloor
	}
	return &Extractor{cfg: cfg, recognizer: recognizer, logger: logger}
}

// Extract reads the file at path and reconstructs its text.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()

	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		e.logger.Error("ocr.unsupported_extension", "path", path, "ext", ext)
		return ExtractionResult{}, common.NewAppError("UNSUPPORTED_INPUT",
			fmt.Sprintf("unsupported extension: %q", ext), common.ErrUnsupportedInput)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{SourceType: format}, fmt.Errorf("read file: %w", err)
	}

	res, err := e.ExtractBytes(ctx, filepath.Base(path), format, data)
	res.Duration = time.Since(start)
	return res, err
}

// ExtractBytes reconstructs text from in-memory file bytes.
func (e *Extractor) ExtractBytes(ctx context.Context, filename, format string, data []byte) (ExtractionResult, error) {
	start := time.Now()
	res := ExtractionResult{SourceType: format}

	pages, err := e.recognizer.Recognize(ctx, filename, data)
	if err != nil {
		return res, fmt.Errorf("recognize: %w", err)
	}
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("document has %d pages; truncated to %d", len(pages), e.cfg.MaxPages))
		pages = pages[:e.cfg.MaxPages]
	}

	rendered := make([]string, 0, len(pages))
	for i, page := range pages {
		tokens := FilterTokens(page, e.cfg.ConfidenceFloor)
		res.TokenCount += len(tokens)
		text := layout.Reconstruct(tokens)
		if text == "" {
			e.logger.Debug("ocr.empty_page", "filename", filename, "page", i+1,
				"detections", len(page.Detections))
		}
		rendered = append(rendered, text)
	}

	res.Pages = len(pages)
	res.Text = strings.Join(rendered, "\n")
	res.Duration = time.Since(start)

	e.logger.Info("ocr.extract.ok",
		"filename", filename,
		"format", format,
		"pages", res.Pages,
		"tokens", res.TokenCount,
		"text_bytes", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
