package persistence

import (
	"strings"

	"github.com/chronodo/backend/internal/pkg/transform"
)

// ColumnFilters rewrites API-vocabulary filter keys (camelCase, as the
// application layer speaks) into the snake_case column names the WHERE
// clauses are built from. Keys already in column form pass through.
func ColumnFilters(filters map[string]interface{}) map[string]interface{} {
	out, ok := transform.KeysToSnake(filters).(map[string]interface{})
	if !ok {
		return filters
	}
	return out
}

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"first_name": true,
	"last_name":  true,
	"role":       true,
	"active":     true,
}

// TeamSortFields contains allowed sort fields for teams
var TeamSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// TimeEntrySortFields contains allowed sort fields for time entries
var TimeEntrySortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"start_time":       true,
	"duration_minutes": true,
}

// TimesheetSortFields contains allowed sort fields for timesheets
var TimesheetSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"week_start": true,
	"status":     true,
}
