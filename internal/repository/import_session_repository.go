package repository

import (
	"budget-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

type ImportSessionRepository struct {
	db *sqlx.DB
}

func NewImportSessionRepository(db *sqlx.DB) *ImportSessionRepository {
	return &ImportSessionRepository{db: db}
}

func (r *ImportSessionRepository) CreateSession(session *models.ImportSession) error {
	query := `INSERT INTO import_sessions (session_code, user_id, filename, file_path, department_id, status)
	          VALUES (:session_code, :user_id, :filename, :file_path, :department_id, :status)`
	result, err := r.db.NamedExec(query, session)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	session.ID = int(id)
	return nil
}

func (r *ImportSessionRepository) GetSessions(limit, offset, filterUserID int) ([]models.ImportSession, int, error) {
	var sessions []models.ImportSession
	var total int

	whereClause := ""
	args := []interface{}{}
	if filterUserID != 0 {
		whereClause = "WHERE user_id = ?"
		args = append(args, filterUserID)
	}

	countQuery := "SELECT COUNT(*) FROM import_sessions " + whereClause
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM import_sessions ` + whereClause + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	if err := r.db.Select(&sessions, query, args...); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *ImportSessionRepository) GetSessionByID(id int) (*models.ImportSession, error) {
	var session models.ImportSession
	query := "SELECT * FROM import_sessions WHERE id = ? LIMIT 1"
	err := r.db.Get(&session, query, id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ImportSessionRepository) UpdateSessionStatus(id int, status string) error {
	query := "UPDATE import_sessions SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	return err
}

// StoreSummary records the outcome of a processed batch on its session.
func (r *ImportSessionRepository) StoreSummary(id int, status string, summary *models.ImportSummary, errorDetail string) error {
	successCount, errorCount := 0, 0
	if summary != nil {
		successCount = summary.SuccessCount
		errorCount = summary.ErrorCount
	}
	query := `UPDATE import_sessions SET status = ?, success_count = ?, error_count = ?, error_detail = ?
	          WHERE id = ?`
	_, err := r.db.Exec(query, status, successCount, errorCount, errorDetail, id)
	return err
}
