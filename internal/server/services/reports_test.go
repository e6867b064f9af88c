package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	body []byte
	url  string
	err  error
}

func (f *fakeSink) Upload(ctx context.Context, body []byte) (string, error) {
	f.body = body
	return f.url, f.err
}

func recordAt(t *testing.T, env *testEnv, clock *time.Time, at time.Time, name string) {
	t.Helper()
	*clock = at
	_, err := env.ledger.Record(context.Background(), name, "")
	require.NoError(t, err)
}

func TestCountByDay_SumsToTotal(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()

	var clock time.Time
	fixedClock(t, &clock)

	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	recordAt(t, env, &clock, day(1, 9), "a")
	recordAt(t, env, &clock, day(1, 23), "b")
	recordAt(t, env, &clock, day(3, 0), "a")
	recordAt(t, env, &clock, day(3, 1), "a")
	recordAt(t, env, &clock, day(3, 2), "c")

	counts, err := env.reports.CountByDayMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2024-03-01": 2, "2024-03-03": 3}, counts)

	all, err := env.query.Query(ctx, models.AttendanceFilter{})
	require.NoError(t, err)
	total := 0
	for date, n := range counts {
		matching := 0
		for _, ev := range all {
			if ev.Timestamp.Format(DateLayout) == date {
				matching++
			}
		}
		assert.Equal(t, matching, n, date)
		total += n
	}
	assert.Equal(t, len(all), total)

	sorted, err := env.reports.CountByDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DailyCount{{Date: "2024-03-01", Count: 2}, {Date: "2024-03-03", Count: 3}}, sorted)
}

func TestCountByDay_Empty(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	counts, err := env.reports.CountByDay(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestCountByDay_UsesReportTimeZone(t *testing.T) {
	env := newTestEnv(t, nil, nil, func(c *config.Config) { c.ReportTimeZone = "America/New_York" })

	var clock time.Time
	fixedClock(t, &clock)

	// 02:30 UTC on March 2 is still March 1 in New York
	recordAt(t, env, &clock, time.Date(2024, 3, 2, 2, 30, 0, 0, time.UTC), "late")
	recordAt(t, env, &clock, time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC), "noon")

	got, err := env.reports.CountByDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.DailyCount{{Date: "2024-03-01", Count: 1}, {Date: "2024-03-02", Count: 1}}, got)
}

func TestNewReportService_BadTimeZone(t *testing.T) {
	cfg := &config.Config{ReportTimeZone: "Nowhere/City"}
	_, err := NewReportService(nil, nil, nil, nil, cfg, nil)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 15, 0, 250_000_000, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.AttendanceEvent{
		{ID: 1, SubjectName: "alice", EventLabel: "General", Timestamp: ts},
		{ID: 2, SubjectName: "smith, john", EventLabel: "Math \"101\"", Timestamp: ts},
	}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "timestamp", "event"},
		{"alice", "2024-03-01T09:15:00.250Z", "General"},
		{"smith, john", "2024-03-01T09:15:00.250Z", "Math \"101\""},
	}, rows)
}

func TestWriteCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "name,timestamp,event\n", buf.String())
}

func TestExport(t *testing.T) {
	sink := &fakeSink{url: "https://s3.example/reports/x.csv?sig"}
	env := newTestEnv(t, nil, sink)
	ctx := context.Background()

	seedLedger(t, env, [][2]string{{"alice", "math"}, {"bob", "math"}})

	url, err := env.reports.Export(ctx, models.AttendanceFilter{SubjectName: ptr("bob")})
	require.NoError(t, err)
	assert.Equal(t, sink.url, url)

	rows, err := csv.NewReader(bytes.NewReader(sink.body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[1][0])
}

func TestExport_Errors(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	_, err := env.reports.Export(context.Background(), models.AttendanceFilter{})
	assert.ErrorIs(t, err, ErrExportDisabled)

	boom := errors.New("bucket missing")
	env = newTestEnv(t, nil, &fakeSink{err: boom})
	_, err = env.reports.Export(context.Background(), models.AttendanceFilter{})
	assert.ErrorIs(t, err, boom)
}
