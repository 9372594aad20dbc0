package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expensewise/bill-digitizer/internal/common"
)

// BillRecord is one normalized bill as persisted after field extraction.
type BillRecord struct {
	ID           uuid.UUID
	JobID        uuid.UUID
	SourcePath   string
	BillNumber   string
	BillDate     string // mm/dd/yyyy, or the model's value verbatim when unparsable
	BillTime     string // hh:mm AM/PM, or the model's value verbatim
	BillAmount   string // always two decimal places
	BillCategory string
	Suspicious   bool
	CreatedAt    time.Time
}

// ListFilter narrows List results. Dates use the stored mm/dd/yyyy form and
// are compared after parsing; records with unparsable dates are included only
// when no date bound is set.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}

type BillRecordRepository interface {
	Insert(ctx context.Context, rec *BillRecord) error
	List(ctx context.Context, filter ListFilter) ([]*BillRecord, error)
}

type billRecordRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewBillRecordRepository(db *sql.DB, log *slog.Logger) BillRecordRepository {
	if log == nil {
		log = slog.Default()
	}
	return &billRecordRepo{db: db, log: log}
}

func (r *billRecordRepo) Insert(ctx context.Context, rec *BillRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	suspicious := 0
	if rec.Suspicious {
		suspicious = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bill_records
		 (id, job_id, source_path, bill_number, bill_date, bill_time, bill_amount, bill_category, suspicious, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.JobID.String(), rec.SourcePath, rec.BillNumber,
		rec.BillDate, rec.BillTime, rec.BillAmount, rec.BillCategory, suspicious, rec.CreatedAt,
	)
	if err != nil {
		r.log.Error("bill_record insert failed", "job_id", rec.JobID, "err", err)
		return common.NewAppError("DB_ERROR", "failed to insert bill record", err)
	}
	r.log.Info("bill_record inserted", "record_id", rec.ID, "job_id", rec.JobID,
		"bill_number", rec.BillNumber, "category", rec.BillCategory)
	return nil
}

func (r *billRecordRepo) List(ctx context.Context, filter ListFilter) ([]*BillRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, source_path, bill_number, bill_date, bill_time,
		        bill_amount, bill_category, suspicious, created_at
		 FROM bill_records ORDER BY created_at`)
	if err != nil {
		r.log.Error("bill_record list failed", "err", err)
		return nil, common.NewAppError("DB_ERROR", "failed to list bill records", err)
	}
	defer rows.Close()

	var out []*BillRecord
	for rows.Next() {
		var (
			rec        BillRecord
			id, jobID  string
			suspicious int
		)
		if err := rows.Scan(&id, &jobID, &rec.SourcePath, &rec.BillNumber, &rec.BillDate,
			&rec.BillTime, &rec.BillAmount, &rec.BillCategory, &suspicious, &rec.CreatedAt); err != nil {
			return nil, common.NewAppError("DB_ERROR", "failed to scan bill record", err)
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "invalid record id in database", err)
		}
		rec.JobID, err = uuid.Parse(jobID)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "invalid job id in database", err)
		}
		rec.Suspicious = suspicious != 0
		if !matchesDateFilter(rec.BillDate, filter) {
			continue
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to iterate bill records", err)
	}
	return out, nil
}

func matchesDateFilter(billDate string, filter ListFilter) bool {
	if filter.From == nil && filter.To == nil {
		return true
	}
	d, err := time.Parse("01/02/2006", billDate)
	if err != nil {
		return false
	}
	if filter.From != nil && d.Before(*filter.From) {
		return false
	}
	if filter.To != nil && d.After(*filter.To) {
		return false
	}
	return true
}
