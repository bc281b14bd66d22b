package repository

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"
)

// AuditRepository appends rows to the audit_logs table. One row is
// written per import batch, never one per processed row.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(actorID int, action string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	query := "INSERT INTO audit_logs (actor_id, action, payload) VALUES (?, ?, ?)"
	_, err = r.db.Exec(query, actorID, action, string(data))
	return err
}
