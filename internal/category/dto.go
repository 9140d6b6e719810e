package category

import "strings"

// CreateCategoryDTO is the transport shape for category creation.
type CreateCategoryDTO struct {
	Name string `json:"name"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate trims the name and checks length bounds. The trimmed name is
// what gets persisted, so callers should read Name back after calling.
func (d *CreateCategoryDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if len(d.Name) > 50 {
		return ValidationError{Msg: "name must be at most 50 characters"}
	}
	return nil
}
