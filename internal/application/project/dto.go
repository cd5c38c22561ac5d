package project

import "github.com/shopspring/decimal"

// CreateProjectInput contains the input for project creation. The code is
// never part of the input; it is allocated by the service.
type CreateProjectInput struct {
	Name        string
	Description string
	BudgetHours *decimal.Decimal
}

// UpdateProjectInput contains the whitelisted updatable fields. The code is
// deliberately absent.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	BudgetHours *decimal.Decimal
}

// ListProjectsInput contains pagination and filter options
type ListProjectsInput struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
}
