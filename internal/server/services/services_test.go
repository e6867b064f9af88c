package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/notify"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	cfg      *config.Config
	creds    *CredentialService
	sessions *SessionService
	ledger   *LedgerService
	query    *QueryService
	reports  *ReportService
}

// cheapHash replaces Argon2id so tests do not allocate 64 MiB per hash.
func cheapHash(t *testing.T) {
	t.Helper()
	origHash, origVerify := hashSecret, verifySecret
	hashSecret = func(secret, salt []byte) []byte {
		h := sha256.New()
		h.Write(salt)
		h.Write(secret)
		return h.Sum(nil)
	}
	verifySecret = func(secret, salt, verifier []byte) bool {
		return bytes.Equal(hashSecret(secret, salt), verifier)
	}
	t.Cleanup(func() { hashSecret, verifySecret = origHash, origVerify })
}

// fixedClock makes the ledger clock return the values of *at.
func fixedClock(t *testing.T, at *time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return *at }
	t.Cleanup(func() { now = orig })
}

type envOption func(*config.Config)

func newTestEnv(t *testing.T, n notify.Notifier, sink ReportSink, opts ...envOption) *testEnv {
	t.Helper()
	cheapHash(t)

	db, rm, err := repomanager.Open(context.Background(), repomanager.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	for _, o := range opts {
		o(cfg)
	}

	log := logging.Nop()
	env := &testEnv{db: db, rm: rm, cfg: cfg}
	env.creds = NewCredentialService(db, rm, log)
	env.sessions = NewSessionService(db, rm, env.creds, cfg, log)
	env.ledger = NewLedgerService(db, rm, n, cfg, log)
	env.query = NewQueryService(db, rm)
	env.reports, err = NewReportService(db, rm, env.query, sink, cfg, log)
	require.NoError(t, err)
	t.Cleanup(env.ledger.Wait)
	return env
}

func ptr(s string) *string { return &s }
