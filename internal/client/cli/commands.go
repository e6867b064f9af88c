package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"text/tabwriter"

	"github.com/dmitrijs2005/rollcall/internal/client/client"
	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/filex"
	"github.com/dmitrijs2005/rollcall/internal/netx"
	pb "github.com/dmitrijs2005/rollcall/internal/proto"
	"github.com/dmitrijs2005/rollcall/internal/voice"
)

// Provision creates an operator account. Only admins may do this.
func (a *App) Provision(ctx context.Context, username string) error {
	if username == "" {
		var err error
		if username, err = GetSimpleText(a.reader, "New username", a.out); err != nil {
			return err
		}
	}

	password, err := GetPassword(fmt.Sprintf("Password for %s", username), a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	resp, err := a.client.Provision(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Provisioned %s (%s)\n", resp.Username, resp.Role)
	return nil
}

// Mark records name as present at event.
func (a *App) Mark(ctx context.Context, name, event string) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	ev, err := a.client.Record(ctx, name, event)
	if err != nil {
		return err
	}
	a.printMarked(ev)
	return nil
}

// MarkVoice listens once on in and records the transcription. Nothing is
// sent to the server when recognition fails.
func (a *App) MarkVoice(ctx context.Context, in voice.Input, language, event string) error {
	if language == "" {
		language = voice.DefaultLanguage
	}
	if !voice.IsSupported(language) {
		return fmt.Errorf("unsupported language %q, choose one of %v", language, voice.SupportedLanguages)
	}

	text, err := in.Listen(ctx, language)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnrecognized):
			fmt.Fprintln(a.out, "Could not understand audio, no attendance recorded")
		case errors.Is(err, common.ErrServiceUnavailable):
			fmt.Fprintln(a.out, "Speech service unavailable, no attendance recorded")
		}
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	ev, err := a.client.RecordVoice(ctx, text, language, event)
	if err != nil {
		return err
	}
	a.printMarked(ev)
	return nil
}

func (a *App) printMarked(ev *pb.AttendanceEvent) {
	fmt.Fprintf(a.out, "Attendance marked for %s at %s (%s)\n", ev.Name, ev.Timestamp.Format(common.TimestampLayout), ev.Event)
}

// Report lists the events matching f as a table, or as CSV.
func (a *App) Report(ctx context.Context, f client.Filter, asCSV bool) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	events, err := a.client.Query(ctx, f)
	if err != nil {
		return err
	}

	if asCSV {
		return writeCSV(a.out, events)
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEVENT\tTIMESTAMP")
	for _, ev := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", ev.ID, ev.Name, ev.Event, ev.Timestamp.Format(common.TimestampLayout))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, events []pb.AttendanceEvent) error {
	return common.WriteReport(w, len(events), func(i int) []string {
		return common.ReportRow(events[i].Name, events[i].Timestamp, events[i].Event)
	})
}

// Daily prints attendance counts per day.
func (a *App) Daily(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	days, err := a.client.CountByDay(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCOUNT")
	for _, d := range days {
		fmt.Fprintf(tw, "%s\t%d\n", d.Date, d.Count)
	}
	return tw.Flush()
}

// Test seams for fetching and storing exported reports.
var (
	download = netx.DownloadFromPresignedURL
	save     = filex.SaveInSubdir
)

// ReportsDir is where downloaded reports are saved, under the working
// directory.
const ReportsDir = "reports"

// Export asks the server to publish a CSV report and prints its link. With
// keep set the report is also downloaded into ReportsDir.
func (a *App) Export(ctx context.Context, f client.Filter, keep bool) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	link, err := a.client.ExportReport(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, link)

	if !keep {
		return nil
	}

	body, err := download(ctx, link)
	if err != nil {
		return err
	}
	saved, err := save(ReportsDir, reportFileName(link), body)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s\n", saved)
	return nil
}

// reportFileName is the last path element of the link, without the
// presigning query.
func reportFileName(link string) string {
	if u, err := url.Parse(link); err == nil {
		if name := path.Base(u.Path); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return "attendance.csv"
}
