package expense

import "strings"

// CreateExpenseDTO is the transport shape for recording an expense.
type CreateExpenseDTO struct {
	CategoryID  string  `json:"categoryId"`
	AmountCents int64   `json:"amountCents"`
	Description *string `json:"description,omitempty"`
	ExpenseDate string  `json:"expenseDate"` // YYYY-MM-DD
}

// ListParams filters and pages the expense listing.
type ListParams struct {
	Month  string // optional YYYY-MM filter
	Limit  int
	Offset int
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d *CreateExpenseDTO) Validate() error {
	if d.CategoryID == "" {
		return ValidationError{Msg: "categoryId is required"}
	}
	if d.AmountCents <= 0 {
		return ValidationError{Msg: "amountCents must be positive"}
	}
	if d.Description != nil {
		trimmed := strings.TrimSpace(*d.Description)
		if len(trimmed) > 200 {
			return ValidationError{Msg: "description must be at most 200 characters"}
		}
		d.Description = &trimmed
	}
	return nil
}
