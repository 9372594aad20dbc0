package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (store these exact strings in the database).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // queued for processing
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusOCROK   JobStatus = "OCR_OK"  // stage 1 completed (text reconstructed)
	JobStatusLLMOK   JobStatus = "LLM_OK"  // stage 2 completed (fields normalized)
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
