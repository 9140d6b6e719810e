package budget

// CategoryLimitDTO is one category ceiling inside a budget save.
type CategoryLimitDTO struct {
	CategoryID string `json:"categoryId"`
	LimitCents int64  `json:"limitCents"`
}

// SaveBudgetDTO is the transport shape for creating or replacing a
// month's budget. A zero warningThresholdPct means "use the default".
type SaveBudgetDTO struct {
	TotalLimitCents     int64              `json:"totalLimitCents"`
	WarningThresholdPct int                `json:"warningThresholdPct"`
	CategoryLimits      []CategoryLimitDTO `json:"categoryLimits"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

const DefaultWarningThresholdPct = 80

func (d *SaveBudgetDTO) Validate() error {
	if d.TotalLimitCents < 0 {
		return ValidationError{Msg: "totalLimitCents must not be negative"}
	}
	if d.WarningThresholdPct == 0 {
		d.WarningThresholdPct = DefaultWarningThresholdPct
	}
	if d.WarningThresholdPct < 1 || d.WarningThresholdPct > 100 {
		return ValidationError{Msg: "warningThresholdPct must be between 1 and 100"}
	}

	seen := make(map[string]bool, len(d.CategoryLimits))
	for _, cl := range d.CategoryLimits {
		if cl.CategoryID == "" {
			return ValidationError{Msg: "categoryId is required on category limits"}
		}
		if cl.LimitCents < 0 {
			return ValidationError{Msg: "limitCents must not be negative"}
		}
		if seen[cl.CategoryID] {
			return ValidationError{Msg: "duplicate categoryId in category limits"}
		}
		seen[cl.CategoryID] = true
	}
	return nil
}
