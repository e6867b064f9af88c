package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"sort"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
)

// DateLayout renders the calendar dates of daily counts.
const DateLayout = "2006-01-02"

// ReportSink stores an exported report and returns a link to it.
type ReportSink interface {
	Upload(ctx context.Context, body []byte) (string, error)
}

// ReportService derives daily counts and CSV exports from the ledger.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	query       *QueryService
	sink        ReportSink
	loc         *time.Location
	log         logging.Logger
}

// NewReportService fails when cfg.ReportTimeZone is not a known zone.
// sink may be nil, in which case Export is unavailable.
func NewReportService(db *sql.DB, m repomanager.RepositoryManager, q *QueryService, sink ReportSink, cfg *config.Config, l logging.Logger) (*ReportService, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &ReportService{db: db, repomanager: m, query: q, sink: sink, loc: loc, log: l.With("module", "reports")}, nil
}

// Query is QueryService.Query; it lets transports depend on one read-side
// service.
func (s *ReportService) Query(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error) {
	return s.query.Query(ctx, filter)
}

// CountByDayMap counts ledger rows per calendar date (YYYY-MM-DD) in the
// report time zone. Dates without rows are absent.
func (s *ReportService) CountByDayMap(ctx context.Context) (map[string]int, error) {
	repo := s.repomanager.Attendance(s.db)
	stamps, err := dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) ([]time.Time, error) {
		return repo.Timestamps(ctx)
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, ts := range stamps {
		counts[ts.In(s.loc).Format(DateLayout)]++
	}
	return counts, nil
}

// CountByDay is CountByDayMap sorted by date ascending.
func (s *ReportService) CountByDay(ctx context.Context) ([]models.DailyCount, error) {
	counts, err := s.CountByDayMap(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.DailyCount, 0, len(counts))
	for date, n := range counts {
		result = append(result, models.DailyCount{Date: date, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

// WriteCSV writes events as an attendance CSV report.
func WriteCSV(w io.Writer, events []models.AttendanceEvent) error {
	return common.WriteReport(w, len(events), func(i int) []string {
		return common.ReportRow(events[i].SubjectName, events[i].Timestamp, events[i].EventLabel)
	})
}

// Export renders the events matching filter as CSV and hands it to the
// configured sink, returning the sink's download link.
func (s *ReportService) Export(ctx context.Context, filter models.AttendanceFilter) (string, error) {
	if s.sink == nil {
		return "", ErrExportDisabled
	}

	events, err := s.query.Query(ctx, filter)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, events); err != nil {
		return "", err
	}

	url, err := s.sink.Upload(ctx, buf.Bytes())
	if err != nil {
		s.log.Error(ctx, "report export failed", "error", err)
		return "", err
	}
	s.log.Info(ctx, "report exported", "rows", len(events))
	return url, nil
}
