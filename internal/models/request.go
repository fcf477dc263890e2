package models

// SelectionQuery binds the user/date selection of a per-user view.
// Both fields are optional at bind time; a missing one yields the idle
// prompt state instead of a validation error.
type SelectionQuery struct {
	User string `form:"user"`
	Date string `form:"date"` // YYYY-MM-DD
}

// TeamQuery binds the team view selection; an empty date lets the backend
// pick its latest day.
type TeamQuery struct {
	Date string `form:"date"`
}
