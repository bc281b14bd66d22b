package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scheme is a budget scheme keyed by its 13-digit scheme code.
type Scheme struct {
	ID                      int             `db:"id" json:"id"`
	SchemeCode              string          `db:"scheme_code" json:"scheme_code"`
	SchemeName              string          `db:"scheme_name" json:"scheme_name"`
	DepartmentID            int             `db:"department_id" json:"department_id"`
	TotalBudgetProvision    decimal.Decimal `db:"total_budget_provision" json:"total_budget_provision"`
	ProgressiveAllotment    decimal.Decimal `db:"progressive_allotment" json:"progressive_allotment"`
	ActualExpenditureDec    decimal.Decimal `db:"actual_expenditure_dec" json:"actual_progressive_expenditure_upto_dec"`
	PercentBudgetExp        decimal.Decimal `db:"percent_budget_exp" json:"percent_budget_expenditure"`
	PercentActualExp        decimal.Decimal `db:"percent_actual_exp" json:"percent_actual_expenditure"`
	ProvisionalCurrentMonth decimal.Decimal `db:"provisional_current_month" json:"provisional_expenditure_current_month"`
	CreatedAt               time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time       `db:"updated_at" json:"updated_at"`
}

type SchemeRequest struct {
	SchemeCode              string          `json:"scheme_code" validate:"required"`
	SchemeName              string          `json:"scheme_name" validate:"required"`
	DepartmentID            int             `json:"department_id" validate:"required"`
	TotalBudgetProvision    decimal.Decimal `json:"total_budget_provision"`
	ProgressiveAllotment    decimal.Decimal `json:"progressive_allotment"`
	ActualExpenditureDec    decimal.Decimal `json:"actual_progressive_expenditure_upto_dec"`
	PercentBudgetExp        decimal.Decimal `json:"percent_budget_expenditure"`
	PercentActualExp        decimal.Decimal `json:"percent_actual_expenditure"`
	ProvisionalCurrentMonth decimal.Decimal `json:"provisional_expenditure_current_month"`
}
