package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for rowIdx, rowData := range rows {
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), rowIdx+1)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func headerRow() []interface{} {
	header := make([]interface{}, len(RequiredColumns))
	for i, col := range RequiredColumns {
		header[i] = col
	}
	return header
}

func TestParseSchemeFile_XLSX(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		headerRow(),
		{"123", "Scheme A", "100", "50", "25", "25", "50", "10"},
		{"456", "Scheme B", "200", "100", "50", "25", "50", "20"},
	})

	rows, err := NewSheetService().ParseSchemeFile(data, "upload.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "123", rows[0].Fields[ColSchemeCode])
	assert.Equal(t, "Scheme B", rows[1].Fields[ColSchemeName])
}

func TestParseSchemeFile_CSV(t *testing.T) {
	csv := strings.Join(RequiredColumns, ",") + "\n" +
		"123,Scheme A,100,50,25,25,50,10\n"

	rows, err := NewSheetService().ParseSchemeFile([]byte(csv), "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Scheme A", rows[0].Fields[ColSchemeName])
}

func TestParseSchemeFile_CSVWithBOM(t *testing.T) {
	csv := "\xef\xbb\xbf" + strings.Join(RequiredColumns, ",") + "\n" +
		"123,Scheme A,100,50,25,25,50,10\n"

	rows, err := NewSheetService().ParseSchemeFile([]byte(csv), "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "123", rows[0].Fields[ColSchemeCode])
}

func TestParseSchemeFile_HeaderNamesAreTrimmed(t *testing.T) {
	header := headerRow()
	header[1] = "  scheme_name  "
	data := buildWorkbook(t, [][]interface{}{
		header,
		{"123", "Scheme A", "100", "50", "25", "25", "50", "10"},
	})

	rows, err := NewSheetService().ParseSchemeFile(data, "upload.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Scheme A", rows[0].Fields[ColSchemeName])
}

func TestParseSchemeFile_MissingColumn(t *testing.T) {
	// Header without scheme_name
	header := []interface{}{}
	for _, col := range RequiredColumns {
		if col == ColSchemeName {
			continue
		}
		header = append(header, col)
	}
	data := buildWorkbook(t, [][]interface{}{
		header,
		{"123", "100", "50", "25", "25", "50", "10"},
	})

	rows, err := NewSheetService().ParseSchemeFile(data, "upload.xlsx")
	require.Error(t, err)
	assert.Nil(t, rows)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ColSchemeName, missing.Column)
}

func TestParseSchemeFile_EmptyFile(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{headerRow()})

	_, err := NewSheetService().ParseSchemeFile(data, "upload.xlsx")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseSchemeFile_UnsupportedExtension(t *testing.T) {
	_, err := NewSheetService().ParseSchemeFile([]byte("whatever"), "upload.pdf")
	assert.Error(t, err)
}

func TestParseSchemeFile_UnreadableBytes(t *testing.T) {
	_, err := NewSheetService().ParseSchemeFile([]byte("not a zip archive"), "upload.xlsx")
	assert.Error(t, err)
}

func TestParseSchemeFile_ShortRowsPadWithEmpty(t *testing.T) {
	csv := strings.Join(RequiredColumns, ",") + "\n" +
		"123,Scheme A\n"

	rows, err := NewSheetService().ParseSchemeFile([]byte(csv), "upload.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Fields[ColProvisional])
}

func TestGenerateSchemeTemplate(t *testing.T) {
	data, err := NewSheetService().GenerateSchemeTemplate()
	require.NoError(t, err)

	// The template must itself decode as a valid import file.
	rows, err := NewSheetService().ParseSchemeFile(data, "template.xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}
