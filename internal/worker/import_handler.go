package worker

import (
	"budget-admin/internal/config"
	"budget-admin/internal/handler"
	"budget-admin/internal/models"
	"budget-admin/internal/repository"
	"budget-admin/internal/service"
	"budget-admin/internal/utils"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// ImportSessionStore is the slice of the session repository the worker
// needs to track a session through its lifecycle.
type ImportSessionStore interface {
	GetSessionByID(id int) (*models.ImportSession, error)
	UpdateSessionStatus(id int, status string) error
	StoreSummary(id int, status string, summary *models.ImportSummary, errorDetail string) error
}

// ImportTaskHandler processes deferred import sessions. It runs the
// same sequential pipeline as the synchronous endpoint and stores the
// summary on the session row.
type ImportTaskHandler struct {
	cfg           *config.Config
	log           *logrus.Logger
	importService *service.SchemeImportService
	sessions      ImportSessionStore
}

func NewImportTaskHandler(db *sqlx.DB, cfg *config.Config) *ImportTaskHandler {
	schemeRepo := repository.NewSchemeRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	sessionRepo := repository.NewImportSessionRepository(db)
	log := utils.GetLogger()

	importService := service.NewSchemeImportService(service.NewSheetService(), schemeRepo, auditRepo, log)

	return &ImportTaskHandler{
		cfg:           cfg,
		log:           log,
		importService: importService,
		sessions:      sessionRepo,
	}
}

func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload handler.ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	h.log.WithFields(logrus.Fields{
		"session_id":   payload.SessionID,
		"session_code": payload.SessionCode,
	}).Info("processing import session")

	session, err := h.sessions.GetSessionByID(payload.SessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := h.sessions.UpdateSessionStatus(session.ID, models.ImportStatusProcessing); err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}

	data, err := os.ReadFile(session.FilePath)
	if err != nil {
		_ = h.sessions.StoreSummary(session.ID, models.ImportStatusFailed, nil, "failed to read uploaded file")
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	summary, err := h.importService.ImportFile(data, session.Filename, session.DepartmentID, session.UserID)
	if err != nil {
		// Batch-level rejection: bad headers, empty file, unreadable bytes.
		_ = h.sessions.StoreSummary(session.ID, models.ImportStatusFailed, nil, err.Error())
		h.log.WithError(err).WithField("session_code", session.SessionCode).Warn("import batch rejected")
		return nil
	}

	errorDetail := strings.Join(summary.Errors, "\n")
	if err := h.sessions.StoreSummary(session.ID, models.ImportStatusCompleted, summary, errorDetail); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	h.log.WithFields(logrus.Fields{
		"session_code":  session.SessionCode,
		"success_count": summary.SuccessCount,
		"error_count":   summary.ErrorCount,
	}).Info("import session completed")

	return nil
}
