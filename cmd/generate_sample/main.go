package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Generates a sample scheme import file with the kind of messy values
// real uploads contain: short codes, dash placeholders, thousands
// separators and a row with a missing name.
func main() {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schemes"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		fmt.Printf("Error creating sheet: %v\n", err)
		return
	}

	headers := []string{
		"scheme_code", "scheme_name", "total_budget_provision",
		"progressive_allotment", "actual_progressive_expenditure_upto_dec",
		"percent_budget_expenditure", "percent_actual_expenditure",
		"provisional_expenditure_current_month",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	sampleData := [][]interface{}{
		{"2059001080101", "District Office Buildings", "1,250.00", "800.00", "640.50", "51.24", "80.06", "75.00"},
		{"123", "Short Code Scheme", "500", "300", "150", "30", "50", "-"},
		{"-", "Dash Code Scheme", "-", "-", "-", "-", "-", "-"},
		{"2059001080104", "", "100", "50", "25", "25", "50", "10"},
	}

	for rowIdx, rowData := range sampleData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", getColumnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.DeleteSheet("Sheet1")

	outputPath := "sample_schemes.xlsx"
	if err := f.SaveAs(outputPath); err != nil {
		fmt.Printf("Error saving file: %v\n", err)
		return
	}

	fmt.Printf("Sample file written to %s\n", outputPath)
}

func getColumnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
