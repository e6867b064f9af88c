package dbx

import "time"

// ToMillis encodes a timestamp for the SQLite INTEGER columns.
func ToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// FromMillis decodes a SQLite INTEGER timestamp as UTC.
func FromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}
