package async

import (
	"context"
	"time"
)

// Job is the smallest useful unit: one document to digitize.
type Job struct {
	SourcePath  string
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
