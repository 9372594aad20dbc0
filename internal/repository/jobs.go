package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expensewise/bill-digitizer/constants"
	"github.com/expensewise/bill-digitizer/internal/common"
)

// ExtractJob tracks one document through the extraction pipeline.
type ExtractJob struct {
	ID           uuid.UUID
	SourcePath   string
	Format       string
	Status       constants.JobStatus
	OCRText      string
	RawResponse  string
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

type ExtractJobRepository interface {
	Start(ctx context.Context, sourcePath, format string) (*ExtractJob, error)
	FinishOCRSuccess(ctx context.Context, jobID uuid.UUID, ocrText string) error
	FinishParseSuccess(ctx context.Context, jobID uuid.UUID, rawResponse string) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string, rawResponse string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*ExtractJob, error)
}

type extractJobRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewExtractJobRepository(db *sql.DB, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{db: db, log: log}
}

func (r *extractJobRepo) Start(ctx context.Context, sourcePath, format string) (*ExtractJob, error) {
	job := &ExtractJob{
		ID:         uuid.New(),
		SourcePath: sourcePath,
		Format:     format,
		Status:     constants.JobStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extract_jobs (id, source_path, format, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		job.ID.String(), job.SourcePath, job.Format, string(job.Status), job.StartedAt,
	)
	if err != nil {
		r.log.Error("extract_job start failed", "source", sourcePath, "err", err)
		return nil, common.NewAppError("DB_ERROR", "failed to start extract job", err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "source", sourcePath, "format", format)
	return job, nil
}

func (r *extractJobRepo) FinishOCRSuccess(ctx context.Context, jobID uuid.UUID, ocrText string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET ocr_text = ?, status = ? WHERE id = ?`,
		ocrText, string(constants.JobStatusOCROK), jobID.String(),
	)
	if err != nil {
		r.log.Error("extract_job finish(OCR_OK) failed", "job_id", jobID, "err", err)
		return common.NewAppError("DB_ERROR", "failed to update extract job", err)
	}
	r.log.Info("extract_job finished (OCR_OK)", "job_id", jobID, "text_len", len(ocrText))
	return nil
}

func (r *extractJobRepo) FinishParseSuccess(ctx context.Context, jobID uuid.UUID, rawResponse string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET raw_response = ?, status = ?, finished_at = ? WHERE id = ?`,
		rawResponse, string(constants.JobStatusLLMOK), now, jobID.String(),
	)
	if err != nil {
		r.log.Error("extract_job finish(LLM_OK) failed", "job_id", jobID, "err", err)
		return common.NewAppError("DB_ERROR", "failed to update extract job", err)
	}
	r.log.Info("extract_job finished (LLM_OK)", "job_id", jobID)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string, rawResponse string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`UPDATE extract_jobs SET error_message = ?, raw_response = ?, status = ?, finished_at = ? WHERE id = ?`,
		message, rawResponse, string(constants.JobStatusFailed), now, jobID.String(),
	)
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return common.NewAppError("DB_ERROR", "failed to update extract job", err)
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*ExtractJob, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source_path, format, status, ocr_text, raw_response, error_message, started_at, finished_at
		 FROM extract_jobs WHERE id = ?`, jobID.String())

	var (
		job      ExtractJob
		id       string
		status   string
		finished sql.NullTime
	)
	err := row.Scan(&id, &job.SourcePath, &job.Format, &status, &job.OCRText,
		&job.RawResponse, &job.ErrorMessage, &job.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("NOT_FOUND", "extract job not found", common.ErrNotFound)
	}
	if err != nil {
		r.log.Error("extract_job get failed", "job_id", jobID, "err", err)
		return nil, common.NewAppError("DB_ERROR", "failed to load extract job", err)
	}
	job.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "invalid job id in database", err)
	}
	job.Status = constants.JobStatus(status)
	if finished.Valid {
		t := finished.Time
		job.FinishedAt = &t
	}
	return &job, nil
}
