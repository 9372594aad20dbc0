package processor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	parse "github.com/expensewise/bill-digitizer/internal/pipeline/parsefields"
	"github.com/expensewise/bill-digitizer/internal/pipeline/textextract"
)

// Processor coordinates OCR (text extract) then LLM parse (fields).
type Processor struct {
	Logger *slog.Logger
	OCR    *textextract.Pipeline
	Parse  *parse.Pipeline
}

func NewProcessor(logger *slog.Logger, ocr *textextract.Pipeline, parse *parse.Pipeline) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, OCR: ocr, Parse: parse}
}

// ProcessDocument runs OCR for a source path (creating an extract_job), then
// runs LLM parse on the resulting job and persists the bill record. Returns
// the jobID started by the OCR stage; on stage failure the job is already
// marked FAILED by the failing pipeline.
func (p *Processor) ProcessDocument(ctx context.Context, sourcePath string) (uuid.UUID, error) {
	jobID, ocrRes, err := p.OCR.Run(ctx, sourcePath)
	if err != nil {
		p.Logger.Error("processor.ocr.failed", "source", sourcePath, "err", err)
		return jobID, err
	}
	p.Logger.Info("processor.ocr.ok",
		"source", sourcePath,
		"job_id", jobID,
		"pages", ocrRes.Pages,
		"tokens", ocrRes.TokenCount,
	)

	rec, err := p.Parse.Run(ctx, jobID)
	if err != nil {
		p.Logger.Error("processor.parse.failed", "job_id", jobID, "err", err)
		return jobID, err
	}
	p.Logger.Info("processor.parse.ok", "job_id", jobID, "record_id", rec.ID)
	return jobID, nil
}
