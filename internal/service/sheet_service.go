package service

import (
	"budget-admin/internal/models"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyFile is returned when a file decodes to zero data rows.
var ErrEmptyFile = errors.New("file contains no data rows")

// MissingColumnError is returned when a required header column is absent.
// The whole batch is rejected; no row is processed.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// RawRow is one decoded data row: header-keyed cell values plus the
// 1-based data row index used for diagnostics.
type RawRow struct {
	Index  int
	Fields map[string]string
}

type SheetService struct{}

func NewSheetService() *SheetService {
	return &SheetService{}
}

// ParseSchemeFile decodes an uploaded scheme file into raw rows. Excel
// files are read from the first sheet only; CSV input is assumed UTF-8
// (no encoding detection, so legacy encodings may come through mangled).
// The first row is the header; every required column must be present
// before any data row is yielded.
func (s *SheetService) ParseSchemeFile(data []byte, filename string) ([]RawRow, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var rows [][]string
	var err error

	switch ext {
	case ".xlsx", ".xls":
		rows, err = readSpreadsheet(data)
	case ".csv":
		rows, err = readDelimited(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range RequiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, &MissingColumnError{Column: required}
		}
	}

	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	rawRows := make([]RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		fields := make(map[string]string, len(columns))
		for name, idx := range columns {
			fields[name] = getCellValue(rows[i], idx)
		}
		rawRows = append(rawRows, RawRow{Index: i, Fields: fields})
	}

	return rawRows, nil
}

func readSpreadsheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return rows, nil
}

func readDelimited(data []byte) ([][]string, error) {
	// Spreadsheet tools often export CSV with a UTF-8 BOM, which would
	// otherwise stick to the first header name.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func getCellValue(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// GenerateSchemeTemplate creates an import template with the required
// header columns and a few sample rows.
func (s *SheetService) GenerateSchemeTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schemes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	for i, header := range RequiredColumns {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(RequiredColumns)-1)), headerStyle)

	sampleData := [][]interface{}{
		{"2059001080101", "District Office Buildings", "1,250.00", "800.00", "640.50", "51.24", "80.06", "75.00"},
		{"2059001080102", "Maintenance and Repairs", "500.00", "300.00", "150.00", "30.00", "50.00", "25.00"},
	}

	for rowIdx, rowData := range sampleData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range RequiredColumns {
		colName := getColumnName(i)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSchemes writes schemes to an Excel workbook for download.
func (s *SheetService) ExportSchemes(schemes []models.Scheme) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schemes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}

	headers := append([]string{}, RequiredColumns...)
	headers = append(headers, "department_id")

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)

	for i, scheme := range schemes {
		row := i + 2
		values := []interface{}{
			scheme.SchemeCode,
			scheme.SchemeName,
			scheme.TotalBudgetProvision.String(),
			scheme.ProgressiveAllotment.String(),
			scheme.ActualExpenditureDec.String(),
			scheme.PercentBudgetExp.String(),
			scheme.PercentActualExp.String(),
			scheme.ProvisionalCurrentMonth.String(),
			scheme.DepartmentID,
		}
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		colName := getColumnName(i)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
