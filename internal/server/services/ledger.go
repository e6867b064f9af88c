package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/notify"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rollcall/internal/voice"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// now is the ledger clock; a seam for tests.
var now = time.Now

const notifyTimeout = 10 * time.Second

// LedgerService appends attendance marks. The timestamp of a mark is
// chosen by the store inside the insert, so id order and timestamp order
// agree across every process sharing the database, even when wall clocks
// disagree or go backwards.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	recipient   string
	log         logging.Logger

	pending sync.WaitGroup
}

// NewLedgerService builds a ledger. notifier may be nil.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, n notify.Notifier, cfg *config.Config, l logging.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		repomanager: m,
		notifier:    n,
		recipient:   cfg.NotifyRecipient,
		log:         l.With("module", "ledger"),
	}
}

// Record marks subject present at label ("General" when empty). Any string
// is accepted; duplicates are kept.
func (s *LedgerService) Record(ctx context.Context, subject, label string) (*models.AttendanceEvent, error) {
	if label == "" {
		label = common.DefaultEventLabel
	}

	ts := now().UTC().Truncate(time.Millisecond)

	var ev *models.AttendanceEvent
	err := dbx.Retry(ctx, dbx.DefaultRetries, func(ctx context.Context) error {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Attendance(tx)
			if err := repo.LockForAppend(ctx); err != nil {
				return err
			}

			var err error
			ev, err = repo.Append(ctx, &models.AttendanceEvent{SubjectName: subject, EventLabel: label, Timestamp: ts})
			return err
		})
	})
	if err != nil {
		if !common.IsStorageError(err) {
			err = common.NewStorageError("append attendance", err)
		}
		return nil, err
	}

	s.log.Info(ctx, "attendance recorded", "id", ev.ID, "subject", subject, "event", label)
	s.notify(ctx, ev)
	return ev, nil
}

// RecordFromVoice listens once on in and records the transcription,
// lower-cased by the rules of lang. Recognition failures and blank
// transcriptions record nothing and are returned as common.ErrUnrecognized
// or common.ErrServiceUnavailable.
func (s *LedgerService) RecordFromVoice(ctx context.Context, in voice.Input, lang, label string) (*models.AttendanceEvent, error) {
	if lang == "" {
		lang = voice.DefaultLanguage
	}

	text, err := in.Listen(ctx, lang)
	if err != nil {
		s.log.Warn(ctx, "voice input failed", "language", lang, "error", err)
		return nil, err
	}

	name := cases.Lower(language.Make(lang)).String(strings.TrimSpace(text))
	if name == "" {
		return nil, common.ErrUnrecognized
	}
	return s.Record(ctx, name, label)
}

// Wait blocks until every notification started so far has finished.
func (s *LedgerService) Wait() {
	s.pending.Wait()
}

func (s *LedgerService) notify(ctx context.Context, ev *models.AttendanceEvent) {
	if s.notifier == nil {
		return
	}

	msg := fmt.Sprintf("Attendance marked for %s at %s", ev.SubjectName, ev.Timestamp.Format(common.TimestampLayout))

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, s.recipient, msg); err != nil {
			s.log.Warn(ctx, "notification failed", "recipient", s.recipient, "error", err)
		}
	}()
}
