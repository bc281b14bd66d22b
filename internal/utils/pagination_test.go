package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(2, 25, 60)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 25, meta.PerPage)
	assert.Equal(t, int64(60), meta.Total)
	assert.Equal(t, 3, meta.LastPage)
	assert.True(t, meta.HasMore)

	last := CalculatePagination(3, 25, 60)
	assert.False(t, last.HasMore)
}

func TestCalculatePagination_Defaults(t *testing.T) {
	meta := CalculatePagination(0, 0, 10)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 25, meta.PerPage)
}

func TestGetOffset(t *testing.T) {
	assert.Equal(t, 0, GetOffset(1, 25))
	assert.Equal(t, 50, GetOffset(3, 25))
}
