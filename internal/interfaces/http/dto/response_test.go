package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListRequest_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListRequest
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", ListRequest{}, 1, 20},
		{"negative page", ListRequest{Page: -3, Limit: 10}, 1, 10},
		{"limit above cap", ListRequest{Page: 2, Limit: 500}, 2, 100},
		{"limit at cap", ListRequest{Page: 2, Limit: 100}, 2, 100},
		{"valid values untouched", ListRequest{Page: 4, Limit: 50}, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}

	t.Run("orderBy is rewritten to the column name", func(t *testing.T) {
		req := ListRequest{OrderBy: "createdAt"}
		req.Normalize()
		assert.Equal(t, "created_at", req.OrderBy)
	})

	t.Run("snake_case orderBy passes through", func(t *testing.T) {
		req := ListRequest{OrderBy: "week_start"}
		req.Normalize()
		assert.Equal(t, "week_start", req.OrderBy)
	})
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPagination_FirstAndLastPage(t *testing.T) {
	first := NewPagination(1, 20, 45)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := NewPagination(3, 20, 45)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)
}

func TestNewPagination_EmptyResult(t *testing.T) {
	p := NewPagination(1, 20, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b"}, 1, 20, 2)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.NotNil(t, resp.Meta.Pagination)
	assert.Equal(t, 1, resp.Meta.Pagination.TotalPages)
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrCodeValidation, "Validation failed", map[string]string{
		"email": "must be a valid email address",
	})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "must be a valid email address", resp.Error.Details["email"])
}
