package textextract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/expensewise/bill-digitizer/constants"
	"github.com/expensewise/bill-digitizer/internal/ocr"
	"github.com/expensewise/bill-digitizer/internal/repository"
)

type Pipeline struct {
	JobsRepo  repository.ExtractJobRepository
	Extractor *ocr.Extractor
	Log       *slog.Logger
}

func NewPipeline(jobs repository.ExtractJobRepository, ex *ocr.Extractor, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{JobsRepo: jobs, Extractor: ex, Log: log}
}

// Run starts an extract_job for sourcePath, runs OCR and layout
// reconstruction, and persists the reconstructed text. The LLM stage is NOT
// called here. Returns the job ID and the extraction summary.
func (p *Pipeline) Run(ctx context.Context, sourcePath string) (uuid.UUID, ocr.ExtractionResult, error) {
	format := constants.MapExtToFormat(filepath.Ext(sourcePath))
	if format == "" {
		return uuid.Nil, ocr.ExtractionResult{}, fmt.Errorf("unsupported format: %s", filepath.Ext(sourcePath))
	}

	job, err := p.JobsRepo.Start(ctx, sourcePath, format)
	if err != nil {
		return uuid.Nil, ocr.ExtractionResult{}, err
	}

	res, err := p.Extractor.Extract(ctx, sourcePath)
	if err != nil {
		_ = p.JobsRepo.FinishFailure(ctx, job.ID, err.Error(), "")
		return job.ID, res, err
	}

	if err := p.JobsRepo.FinishOCRSuccess(ctx, job.ID, res.Text); err != nil {
		return job.ID, res, err
	}

	p.Log.Info("textextract.ok",
		"job_id", job.ID, "source", sourcePath,
		"pages", res.Pages, "tokens", res.TokenCount,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return job.ID, res, nil
}
