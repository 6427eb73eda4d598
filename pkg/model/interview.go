package model

import "time"

const (
	// DateLayout is the only accepted calendar date format.
	DateLayout = "2006-01-02"
	// TimeLayout is the only accepted time-of-day format (24-hour).
	TimeLayout = "15:04"

	// NoTimeSpecified is the sentinel stored when an interview has no time.
	NoTimeSpecified = "No time specified"
	// DefaultCategory replaces time-shaped categories left over from the old
	// schema, where times were misfiled into the type column.
	DefaultCategory = "Interview"
)

// Interview is the sole persisted entity: one scheduled interview owned by
// the user who created it.
type Interview struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     int64     `json:"owner_id" db:"user_id"`
	OwnerName   string    `json:"owner_name" db:"user_name"`
	Date        string    `json:"date" db:"interview_date"`
	Time        string    `json:"time" db:"interview_time"`
	Category    string    `json:"category" db:"interview_type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// HasTime reports whether the record carries a real time rather than the
// sentinel or a blank.
func (i Interview) HasTime() bool {
	return i.Time != "" && i.Time != NoTimeSpecified
}

// FieldUpdates is a partial update against one interview. Nil fields are
// left untouched.
type FieldUpdates struct {
	Date        *string
	Time        *string
	Category    *string
	Description *string
}

// IsZero reports whether no field is set.
func (u FieldUpdates) IsZero() bool {
	return u.Date == nil && u.Time == nil && u.Category == nil && u.Description == nil
}

// OwnerCount is one row of the per-owner ranking.
type OwnerCount struct {
	OwnerName string `json:"owner_name"`
	Count     int    `json:"count"`
}
