package worker

import (
	"budget-admin/internal/config"
	"budget-admin/internal/handler"
	"budget-admin/internal/models"
	"budget-admin/internal/service"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchemeStore struct {
	schemes map[string]*models.Scheme
	nextID  int
}

func (s *fakeSchemeStore) FindByCode(code string) (*models.Scheme, error) {
	scheme, ok := s.schemes[code]
	if !ok {
		return nil, nil
	}
	clone := *scheme
	return &clone, nil
}

func (s *fakeSchemeStore) Create(scheme *models.Scheme) error {
	s.nextID++
	scheme.ID = s.nextID
	clone := *scheme
	s.schemes[scheme.SchemeCode] = &clone
	return nil
}

func (s *fakeSchemeStore) Update(scheme *models.Scheme) error {
	clone := *scheme
	s.schemes[scheme.SchemeCode] = &clone
	return nil
}

type fakeAudit struct{}

func (a *fakeAudit) Record(actorID int, action string, payload interface{}) error {
	return nil
}

type summaryCall struct {
	status      string
	summary     *models.ImportSummary
	errorDetail string
}

type fakeSessionStore struct {
	session     *models.ImportSession
	transitions []string
	stored      []summaryCall
}

func (s *fakeSessionStore) GetSessionByID(id int) (*models.ImportSession, error) {
	clone := *s.session
	return &clone, nil
}

func (s *fakeSessionStore) UpdateSessionStatus(id int, status string) error {
	s.transitions = append(s.transitions, status)
	return nil
}

func (s *fakeSessionStore) StoreSummary(id int, status string, summary *models.ImportSummary, errorDetail string) error {
	s.transitions = append(s.transitions, status)
	s.stored = append(s.stored, summaryCall{status: status, summary: summary, errorDetail: errorDetail})
	return nil
}

func newTestTaskHandler(t *testing.T, sessions *fakeSessionStore) *ImportTaskHandler {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &fakeSchemeStore{schemes: map[string]*models.Scheme{}}
	importService := service.NewSchemeImportService(service.NewSheetService(), store, &fakeAudit{}, log)

	return &ImportTaskHandler{
		cfg:           &config.Config{},
		log:           log,
		importService: importService,
		sessions:      sessions,
	}
}

func writeSessionFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func importTask(t *testing.T, sessionID int, sessionCode string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(handler.ImportTaskPayload{
		SessionID:   sessionID,
		SessionCode: sessionCode,
	})
	require.NoError(t, err)
	return asynq.NewTask(handler.ImportTaskType, payload)
}

func TestImportTaskHandler_CompletesSession(t *testing.T) {
	csv := strings.Join(service.RequiredColumns, ",") + "\n" +
		"111,Scheme A,1000,500,250,25,50,10\n" +
		"222,,100,50,25,25,50,10\n"
	path := writeSessionFile(t, "upload.csv", []byte(csv))

	departmentID := 7
	sessions := &fakeSessionStore{session: &models.ImportSession{
		ID:           1,
		SessionCode:  "IMPORT-abcd1234",
		UserID:       1,
		Filename:     "upload.csv",
		FilePath:     path,
		DepartmentID: &departmentID,
		Status:       models.ImportStatusQueued,
	}}

	h := newTestTaskHandler(t, sessions)
	err := h.Handle(context.Background(), importTask(t, 1, "IMPORT-abcd1234"))
	require.NoError(t, err)

	assert.Equal(t, []string{models.ImportStatusProcessing, models.ImportStatusCompleted}, sessions.transitions)

	require.Len(t, sessions.stored, 1)
	call := sessions.stored[0]
	assert.Equal(t, models.ImportStatusCompleted, call.status)
	require.NotNil(t, call.summary)
	assert.Equal(t, 1, call.summary.SuccessCount)
	assert.Equal(t, 1, call.summary.ErrorCount)
	assert.Equal(t, "Row 3: scheme_name: Name is required", call.errorDetail)
}

func TestImportTaskHandler_BatchErrorMarksFailed(t *testing.T) {
	path := writeSessionFile(t, "upload.csv", []byte("scheme_code,total_budget_provision\n111,100\n"))

	sessions := &fakeSessionStore{session: &models.ImportSession{
		ID:          2,
		SessionCode: "IMPORT-ffff0000",
		UserID:      1,
		Filename:    "upload.csv",
		FilePath:    path,
		Status:      models.ImportStatusQueued,
	}}

	h := newTestTaskHandler(t, sessions)

	// A rejected batch is a terminal outcome, not a reason to retry.
	err := h.Handle(context.Background(), importTask(t, 2, "IMPORT-ffff0000"))
	require.NoError(t, err)

	assert.Equal(t, []string{models.ImportStatusProcessing, models.ImportStatusFailed}, sessions.transitions)

	require.Len(t, sessions.stored, 1)
	call := sessions.stored[0]
	assert.Equal(t, models.ImportStatusFailed, call.status)
	assert.Nil(t, call.summary)
	assert.Contains(t, call.errorDetail, "scheme_name")
}

func TestImportTaskHandler_MissingFileMarksFailed(t *testing.T) {
	sessions := &fakeSessionStore{session: &models.ImportSession{
		ID:          3,
		SessionCode: "IMPORT-00000000",
		UserID:      1,
		Filename:    "upload.csv",
		FilePath:    filepath.Join(t.TempDir(), "does-not-exist.csv"),
		Status:      models.ImportStatusQueued,
	}}

	h := newTestTaskHandler(t, sessions)
	err := h.Handle(context.Background(), importTask(t, 3, "IMPORT-00000000"))
	require.Error(t, err)

	require.Len(t, sessions.stored, 1)
	assert.Equal(t, models.ImportStatusFailed, sessions.stored[0].status)
	assert.Nil(t, sessions.stored[0].summary)
}
