package parsefields

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expensewise/bill-digitizer/constants"
	"github.com/expensewise/bill-digitizer/internal/fields"
	"github.com/expensewise/bill-digitizer/internal/llm"
	"github.com/expensewise/bill-digitizer/internal/repository"
)

// Config holds behavior flags for the parse stage.
type Config struct {
	PromptConfiguration string // prompt template name passed to the extractor
	ValidateSchema      bool   // validate the normalized record before insert
}

type Pipeline struct {
	Logger      *slog.Logger
	Cfg         Config
	JobsRepo    repository.ExtractJobRepository
	RecordsRepo repository.BillRecordRepository
	Extractor   llm.FieldExtractor
	Normalizer  *fields.Normalizer
}

func NewPipeline(
	logger *slog.Logger,
	cfg Config,
	jobs repository.ExtractJobRepository,
	recs repository.BillRecordRepository,
	fe llm.FieldExtractor,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Logger:      logger,
		Cfg:         cfg,
		JobsRepo:    jobs,
		RecordsRepo: recs,
		Extractor:   fe,
		Normalizer:  fields.NewNormalizer(logger),
	}
}

// Run executes the LLM parse stage for an existing OCR job.
// Preconditions: job is OCR_OK with non-empty ocr_text.
// Effects: normalizes the model reply into a bill record, persists it, and
// marks the job LLM_OK. A malformed model reply fails the job with the
// sentinel payload stored as the raw response; it is not retried.
func (p *Pipeline) Run(ctx context.Context, jobID uuid.UUID) (*repository.BillRecord, error) {
	job, err := p.JobsRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job.Status != constants.JobStatusOCROK || job.OCRText == "" {
		return nil, fmt.Errorf("job not ready for parse: status=%s ocr_text_empty=%t",
			job.Status, job.OCRText == "")
	}

	p.Logger.Info("parsefields.start",
		"job_id", job.ID, "source", job.SourcePath, "ocr_bytes", len(job.OCRText))

	raw, rawReply, err := p.Extractor.ExtractFields(ctx, llm.ExtractRequest{
		OCRText:       job.OCRText,
		Configuration: p.Cfg.PromptConfiguration,
		FilenameHint:  job.SourcePath,
	})
	if err != nil {
		var malformed *fields.MalformedResponseError
		if errors.As(err, &malformed) {
			sentinel, _ := json.Marshal(malformed.Sentinel())
			_ = p.JobsRepo.FinishFailure(ctx, job.ID, "model reply was not valid JSON", string(sentinel))
			return nil, fmt.Errorf("llm extract: %w", err)
		}
		_ = p.JobsRepo.FinishFailure(ctx, job.ID, err.Error(), string(rawReply))
		return nil, fmt.Errorf("llm extract: %w", err)
	}

	rec, warnings := p.Normalizer.Normalize(raw)
	for _, w := range warnings {
		p.Logger.Warn("parsefields.normalize_warning", "job_id", job.ID, "warning", w)
	}

	if p.Cfg.ValidateSchema {
		encoded, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encode record: %w", err)
		}
		if err := llm.ValidateJSONAgainstSchema(llm.BuildBillRecordSchema(), encoded); err != nil {
			_ = p.JobsRepo.FinishFailure(ctx, job.ID, err.Error(), string(rawReply))
			return nil, fmt.Errorf("validate record: %w", err)
		}
	}

	row := &repository.BillRecord{
		JobID:        job.ID,
		SourcePath:   job.SourcePath,
		BillNumber:   rec.BillNumber,
		BillDate:     rec.Date,
		BillTime:     rec.Time,
		BillAmount:   rec.BillAmount,
		BillCategory: rec.BillCategory,
		Suspicious:   len(warnings) > 0,
	}
	if err := p.RecordsRepo.Insert(ctx, row); err != nil {
		_ = p.JobsRepo.FinishFailure(ctx, job.ID, err.Error(), string(rawReply))
		return nil, fmt.Errorf("insert record: %w", err)
	}

	if err := p.JobsRepo.FinishParseSuccess(ctx, job.ID, string(rawReply)); err != nil {
		return nil, err
	}

	p.Logger.Info("parsefields.ok",
		"job_id", job.ID, "record_id", row.ID,
		"bill_number", rec.BillNumber, "date", rec.Date,
		"amount", rec.BillAmount, "category", rec.BillCategory,
	)
	return row, nil
}
