package internal

import "time"

// ValidMonth reports whether s is a calendar month in YYYY-MM form.
func ValidMonth(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// MonthOfDate extracts the YYYY-MM prefix of a YYYY-MM-DD date.
func MonthOfDate(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
