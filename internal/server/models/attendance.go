package models

import "time"

// AttendanceEvent is one append-only ledger row: SubjectName was marked
// present at EventLabel at Timestamp. ID grows with insertion order.
type AttendanceEvent struct {
	ID          int64     `json:"id"`
	SubjectName string    `json:"name"`
	EventLabel  string    `json:"event"`
	Timestamp   time.Time `json:"timestamp"`
}

// AttendanceFilter narrows a ledger query. A nil field places no
// constraint on that column; a non-nil empty string matches empty values.
type AttendanceFilter struct {
	SubjectName *string
	EventLabel  *string
}

// DailyCount is the number of ledger rows whose timestamp falls on Date
// (YYYY-MM-DD in the report time zone).
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
