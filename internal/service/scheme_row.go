package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Required header columns for a scheme import file.
const (
	ColSchemeCode    = "scheme_code"
	ColSchemeName    = "scheme_name"
	ColTotalBudget   = "total_budget_provision"
	ColAllotment     = "progressive_allotment"
	ColActualExp     = "actual_progressive_expenditure_upto_dec"
	ColPercentBudget = "percent_budget_expenditure"
	ColPercentActual = "percent_actual_expenditure"
	ColProvisional   = "provisional_expenditure_current_month"
)

var RequiredColumns = []string{
	ColSchemeCode,
	ColSchemeName,
	ColTotalBudget,
	ColAllotment,
	ColActualExp,
	ColPercentBudget,
	ColPercentActual,
	ColProvisional,
}

const schemeCodeLength = 13

// SchemeRecord is a validated, coerced scheme row. The code is always
// exactly 13 digits and the amounts are always non-negative.
type SchemeRecord struct {
	Code                    string
	Name                    string
	TotalBudget             decimal.Decimal
	Allotment               decimal.Decimal
	ActualExpenditure       decimal.Decimal
	PercentBudget           decimal.Decimal
	PercentActual           decimal.Decimal
	ProvisionalCurrentMonth decimal.Decimal
}

// validateSchemeRow coerces one raw row into a SchemeRecord and returns
// any field violations. All violations are collected before returning;
// the scheme name is the only field that can fail the row. Codes and
// amounts are coerced, never rejected: the import tolerates messy
// numbers but refuses to create an unnamed scheme.
func validateSchemeRow(row RawRow) (SchemeRecord, []string) {
	var violations []string

	record := SchemeRecord{
		Code:                    normalizeSchemeCode(row.Fields[ColSchemeCode]),
		TotalBudget:             coerceAmount(row.Fields[ColTotalBudget]),
		Allotment:               coerceAmount(row.Fields[ColAllotment]),
		ActualExpenditure:       coerceAmount(row.Fields[ColActualExp]),
		PercentBudget:           coerceAmount(row.Fields[ColPercentBudget]),
		PercentActual:           coerceAmount(row.Fields[ColPercentActual]),
		ProvisionalCurrentMonth: coerceAmount(row.Fields[ColProvisional]),
	}

	name, err := requireName(row.Fields[ColSchemeName])
	if err != nil {
		violations = append(violations, fmt.Sprintf("%s: %s", ColSchemeName, err))
	}
	record.Name = name

	return record, violations
}

// normalizeSchemeCode coerces a raw code to exactly 13 digits. Empty,
// "-" or non-numeric input collapses to "0" before padding, so every
// unusable code maps to the same all-zero sentinel.
func normalizeSchemeCode(raw string) string {
	code := strings.TrimSpace(raw)
	if code == "" || code == "-" || !isDigits(code) {
		code = "0"
	}
	if len(code) > schemeCodeLength {
		return code[len(code)-schemeCodeLength:]
	}
	return strings.Repeat("0", schemeCodeLength-len(code)) + code
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// coerceAmount parses a raw budget amount, falling back to zero on
// anything unparseable. Thousands separators are stripped and negative
// values clamp to zero.
func coerceAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, ",", "")
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func requireName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errors.New("Name is required")
	}
	return name, nil
}
