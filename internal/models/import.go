package models

import "time"

// ImportSummary is the per-batch outcome returned to the caller. Errors
// holds at most a capped number of formatted row diagnostics; ErrorCount
// always reports the true total.
type ImportSummary struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
	Truncated    bool     `json:"truncated"`
}

// ImportSession tracks a deferred import: the file is saved on upload and
// processed later by the worker, which stores the summary here.
type ImportSession struct {
	ID           int       `db:"id" json:"id"`
	SessionCode  string    `db:"session_code" json:"session_code"`
	UserID       int       `db:"user_id" json:"user_id"`
	Filename     string    `db:"filename" json:"filename"`
	FilePath     string    `db:"file_path" json:"file_path"`
	DepartmentID *int      `db:"department_id" json:"department_id"`
	Status       string    `db:"status" json:"status"`
	SuccessCount int       `db:"success_count" json:"success_count"`
	ErrorCount   int       `db:"error_count" json:"error_count"`
	ErrorDetail  string    `db:"error_detail" json:"error_detail"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Import session statuses.
const (
	ImportStatusQueued     = "queued"
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)
