package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSchemeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short code is left-padded", "123", "0000000000123"},
		{"full length code is unchanged", "2059001080101", "2059001080101"},
		{"empty collapses to sentinel", "", "0000000000000"},
		{"dash collapses to sentinel", "-", "0000000000000"},
		{"non-digit collapses to sentinel", "abc123", "0000000000000"},
		{"whitespace is trimmed first", "  123  ", "0000000000123"},
		{"decimal point is not a digit", "123.4", "0000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeSchemeCode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, schemeCodeLength)
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain number", "100", "100"},
		{"decimal number", "640.50", "640.5"},
		{"thousands separators stripped", "1,234.50", "1234.5"},
		{"dash means zero", "-", "0"},
		{"empty means zero", "", "0"},
		{"whitespace only means zero", "   ", "0"},
		{"unparseable text means zero", "n/a", "0"},
		{"negative clamps to zero", "-25.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := coerceAmount(tt.in)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
			assert.False(t, got.IsNegative())
		})
	}
}

func schemeRow(index int, fields map[string]string) RawRow {
	all := map[string]string{}
	for _, col := range RequiredColumns {
		all[col] = ""
	}
	for k, v := range fields {
		all[k] = v
	}
	return RawRow{Index: index, Fields: all}
}

func TestValidateSchemeRow_Valid(t *testing.T) {
	row := schemeRow(1, map[string]string{
		ColSchemeCode:    "123",
		ColSchemeName:    " District Office Buildings ",
		ColTotalBudget:   "1,250.00",
		ColAllotment:     "800.00",
		ColActualExp:     "640.50",
		ColPercentBudget: "51.24",
		ColPercentActual: "80.06",
		ColProvisional:   "-",
	})

	record, violations := validateSchemeRow(row)
	require.Empty(t, violations)

	assert.Equal(t, "0000000000123", record.Code)
	assert.Equal(t, "District Office Buildings", record.Name)
	assert.True(t, record.TotalBudget.Equal(decimal.RequireFromString("1250")))
	assert.True(t, record.Allotment.Equal(decimal.RequireFromString("800")))
	assert.True(t, record.ActualExpenditure.Equal(decimal.RequireFromString("640.5")))
	assert.True(t, record.PercentBudget.Equal(decimal.RequireFromString("51.24")))
	assert.True(t, record.PercentActual.Equal(decimal.RequireFromString("80.06")))
	assert.True(t, record.ProvisionalCurrentMonth.Equal(decimal.Zero))
}

func TestValidateSchemeRow_MissingName(t *testing.T) {
	row := schemeRow(2, map[string]string{
		ColSchemeCode: "2059001080101",
		ColSchemeName: "   ",
	})

	_, violations := validateSchemeRow(row)
	require.Len(t, violations, 1)
	assert.Equal(t, "scheme_name: Name is required", violations[0])
}

func TestValidateSchemeRow_BadAmountsNeverFail(t *testing.T) {
	row := schemeRow(3, map[string]string{
		ColSchemeCode:    "not-a-code",
		ColSchemeName:    "Messy Numbers Scheme",
		ColTotalBudget:   "garbage",
		ColAllotment:     "-",
		ColActualExp:     "",
		ColPercentBudget: "-10",
		ColPercentActual: "1,000",
		ColProvisional:   "0.5",
	})

	record, violations := validateSchemeRow(row)
	require.Empty(t, violations)

	assert.Equal(t, "0000000000000", record.Code)
	assert.True(t, record.TotalBudget.Equal(decimal.Zero))
	assert.True(t, record.Allotment.Equal(decimal.Zero))
	assert.True(t, record.ActualExpenditure.Equal(decimal.Zero))
	assert.True(t, record.PercentBudget.Equal(decimal.Zero))
	assert.True(t, record.PercentActual.Equal(decimal.RequireFromString("1000")))
	assert.True(t, record.ProvisionalCurrentMonth.Equal(decimal.RequireFromString("0.5")))
}
