package services

import "library/internal/models"

// DefaultBorrowWindowDays is the look-back window of the "recently borrowed" query.
const DefaultBorrowWindowDays = 30

// WithinDuration reports whether borrowed lies at most days calendar days
// before today. Dates after today always qualify.
func WithinDuration(borrowed, today models.Date, days int) bool {
	return today.DaysSince(borrowed) <= days
}

// WithinBracket reports whether from <= borrowed <= to. An inverted bracket
// (from after to) matches nothing.
func WithinBracket(borrowed, from, to models.Date) bool {
	return !borrowed.Before(from) && !borrowed.After(to)
}
