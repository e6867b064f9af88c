package common

import (
	"encoding/csv"
	"io"
	"time"
)

// TimestampLayout renders event timestamps in reports and notices.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ReportHeader is the header row of an attendance CSV report.
var ReportHeader = []string{"name", "timestamp", "event"}

// ReportRow renders one attendance mark as a CSV report row. The timestamp
// is written in UTC.
func ReportRow(name string, ts time.Time, event string) []string {
	return []string{name, ts.UTC().Format(TimestampLayout), event}
}

// WriteReport writes ReportHeader followed by n rows produced by row.
func WriteReport(w io.Writer, n int, row func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
