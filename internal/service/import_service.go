package service

import (
	"budget-admin/internal/models"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxReportedErrors caps the diagnostics list in a summary. ErrorCount
// always reports the true total even when the list is truncated.
const maxReportedErrors = 5

const auditActionImport = "scheme.import"

// SchemeStore is the record store the import reconciles against.
// FindByCode returns (nil, nil) when the code is absent.
type SchemeStore interface {
	FindByCode(code string) (*models.Scheme, error)
	Create(scheme *models.Scheme) error
	Update(scheme *models.Scheme) error
}

// AuditSink receives exactly one event per import batch.
type AuditSink interface {
	Record(actorID int, action string, payload interface{}) error
}

type SchemeImportService struct {
	sheets *SheetService
	store  SchemeStore
	audit  AuditSink
	log    *logrus.Logger
}

func NewSchemeImportService(sheets *SheetService, store SchemeStore, audit AuditSink, log *logrus.Logger) *SchemeImportService {
	return &SchemeImportService{
		sheets: sheets,
		store:  store,
		audit:  audit,
		log:    log,
	}
}

// ImportFile runs the full pipeline on an uploaded file: decode,
// validate, reconcile, summarize. A non-nil error means the batch was
// rejected before any row was processed (bad header, empty file,
// unreadable bytes). Once decoding succeeds every row gets a terminal
// outcome and the summary is always returned.
func (s *SchemeImportService) ImportFile(data []byte, filename string, departmentID *int, actorID int) (*models.ImportSummary, error) {
	rows, err := s.sheets.ParseSchemeFile(data, filename)
	if err != nil {
		return nil, err
	}
	return s.importRows(rows, departmentID, actorID), nil
}

// importRows processes rows strictly in order, one at a time. Sequential
// processing keeps duplicate-code resolution deterministic (later rows
// see earlier rows' creates) and keeps row numbering stable. No
// transaction spans the batch: valid rows commit even when others fail.
func (s *SchemeImportService) importRows(rows []RawRow, departmentID *int, actorID int) *models.ImportSummary {
	summary := &models.ImportSummary{Errors: []string{}}
	overflow := 0

	for _, row := range rows {
		if err := s.reconcileRow(row, departmentID); err != nil {
			summary.ErrorCount++
			if len(summary.Errors) < maxReportedErrors {
				// +1 so the number matches the sheet line including the header
				summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", row.Index+1, err))
			} else {
				overflow++
			}
			continue
		}
		summary.SuccessCount++
	}

	if overflow > 0 {
		summary.Errors = append(summary.Errors, fmt.Sprintf("...and %d more", overflow))
		summary.Truncated = true
	}

	s.recordAudit(actorID, departmentID, summary)

	return summary
}

// reconcileRow upserts one validated row against the store. Any error is
// the row's terminal outcome; it never aborts the batch.
func (s *SchemeImportService) reconcileRow(row RawRow, departmentID *int) error {
	record, violations := validateSchemeRow(row)
	if len(violations) > 0 {
		return errors.New(strings.Join(violations, "; "))
	}

	existing, err := s.store.FindByCode(record.Code)
	if err != nil {
		return err
	}

	if existing != nil {
		applySchemeRecord(existing, record)
		if err := s.store.Update(existing); err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"scheme_id":   existing.ID,
			"scheme_code": record.Code,
		}).Debug("scheme updated")
		return nil
	}

	if departmentID == nil {
		return errors.New("no department selected for new scheme")
	}

	scheme := &models.Scheme{
		SchemeCode:   record.Code,
		DepartmentID: *departmentID,
	}
	applySchemeRecord(scheme, record)
	if err := s.store.Create(scheme); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"scheme_id":   scheme.ID,
		"scheme_code": record.Code,
	}).Debug("scheme created")
	return nil
}

// applySchemeRecord overwrites every mutable field from the validated
// record (full replace, not merge). The code and department never change
// on update.
func applySchemeRecord(scheme *models.Scheme, record SchemeRecord) {
	scheme.SchemeName = record.Name
	scheme.TotalBudgetProvision = record.TotalBudget
	scheme.ProgressiveAllotment = record.Allotment
	scheme.ActualExpenditureDec = record.ActualExpenditure
	scheme.PercentBudgetExp = record.PercentBudget
	scheme.PercentActualExp = record.PercentActual
	scheme.ProvisionalCurrentMonth = record.ProvisionalCurrentMonth
}

func (s *SchemeImportService) recordAudit(actorID int, departmentID *int, summary *models.ImportSummary) {
	payload := map[string]interface{}{
		"success_count": summary.SuccessCount,
		"error_count":   summary.ErrorCount,
		"department_id": departmentID,
	}
	if err := s.audit.Record(actorID, auditActionImport, payload); err != nil {
		s.log.WithError(err).Warn("failed to record import audit event")
	}
}
