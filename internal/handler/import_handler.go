package handler

import (
	"budget-admin/internal/config"
	"budget-admin/internal/models"
	"budget-admin/internal/service"
	"budget-admin/internal/utils"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ImportTaskType is the asynq task processed by cmd/worker for deferred
// imports.
const ImportTaskType = "scheme:import"

type ImportTaskPayload struct {
	SessionID   int    `json:"session_id"`
	SessionCode string `json:"session_code"`
}

// TaskEnqueuer queues background tasks. Satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImportSessionStore persists deferred import sessions.
type ImportSessionStore interface {
	CreateSession(session *models.ImportSession) error
	GetSessions(limit, offset, filterUserID int) ([]models.ImportSession, int, error)
	GetSessionByID(id int) (*models.ImportSession, error)
}

type ImportHandler struct {
	importService *service.SchemeImportService
	sessions      ImportSessionStore
	enqueuer      TaskEnqueuer
	cfg           *config.Config
}

func NewImportHandler(
	importService *service.SchemeImportService,
	sessions ImportSessionStore,
	enqueuer TaskEnqueuer,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		sessions:      sessions,
		enqueuer:      enqueuer,
		cfg:           cfg,
	}
}

// ImportSchemes runs the pipeline synchronously and returns the batch
// summary. Row-level failures are reported inside the summary and never
// turn the response into an error; only batch-level problems (bad file,
// missing columns, empty file) do.
func (h *ImportHandler) ImportSchemes(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	if err := h.checkUpload(file); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	data, err := readUpload(file)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read uploaded file", err)
	}

	departmentID, err := parseDepartmentID(c.FormValue("department_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid department_id", err)
	}

	summary, err := h.importService.ImportFile(data, file.Filename, departmentID, actorID)
	if err != nil {
		return batchErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"success_count": summary.SuccessCount,
		"error_count":   summary.ErrorCount,
		"errors":        summary.Errors,
	})
}

// CreateDeferredImport stores the file and queues it for the worker.
func (h *ImportHandler) CreateDeferredImport(c *fiber.Ctx) error {
	actorID := c.Locals("user_id").(int)

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File is required", err)
	}

	if err := h.checkUpload(file); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	departmentID, err := parseDepartmentID(c.FormValue("department_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid department_id", err)
	}

	if h.enqueuer == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Background processing is not available (Redis not connected)", nil)
	}

	sessionCode := fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
	filePath := filepath.Join(h.cfg.UploadPath, fmt.Sprintf("%s%s", sessionCode, filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, filePath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file", err)
	}

	session := &models.ImportSession{
		SessionCode:  sessionCode,
		UserID:       actorID,
		Filename:     file.Filename,
		FilePath:     filePath,
		DepartmentID: departmentID,
		Status:       models.ImportStatusQueued,
	}
	if err := h.sessions.CreateSession(session); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create import session", err)
	}

	payload, _ := json.Marshal(ImportTaskPayload{
		SessionID:   session.ID,
		SessionCode: session.SessionCode,
	})
	if _, err := h.enqueuer.Enqueue(asynq.NewTask(ImportTaskType, payload)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue import task", err)
	}

	return utils.SuccessResponse(c, "Import queued", session)
}

func (h *ImportHandler) GetSessions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	role := c.Locals("role").(string)

	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	// Admin can see all sessions, user can only see their own
	filterUserID := 0
	if role != "admin" {
		filterUserID = userID
	}

	sessions, total, err := h.sessions.GetSessions(params.Limit, offset, filterUserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sessions", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	return utils.SuccessResponse(c, "Sessions retrieved successfully", fiber.Map{
		"sessions":   sessions,
		"pagination": pagination,
	})
}

func (h *ImportHandler) GetSessionDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid session ID", err)
	}

	session, err := h.sessions.GetSessionByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Session not found", err)
	}

	return utils.SuccessResponse(c, "Session retrieved successfully", session)
}

func (h *ImportHandler) checkUpload(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		return errors.New("only .xlsx, .xls and .csv files are allowed")
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return errors.New("file size exceeds maximum limit")
	}
	return nil
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func parseDepartmentID(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func batchErrorResponse(c *fiber.Ctx, err error) error {
	var missing *service.MissingColumnError
	switch {
	case errors.Is(err, service.ErrEmptyFile):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File contains no data rows", nil)
	case errors.As(err, &missing):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, missing.Error(), nil)
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read file", err)
	}
}
