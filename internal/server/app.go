// Package server wires storage, services and transports into the rollcall
// server process and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/notify"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/export"
	"github.com/dmitrijs2005/rollcall/internal/server/httpapi"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rollcall/internal/server/services"
	"github.com/dmitrijs2005/rollcall/internal/telemetry"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/rollcall/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	ledger  *services.LedgerService
	grpc    *gs.GRPCServer
	http    *httpapi.Server
	tracing func(context.Context) error
}

// logOutput receives the server log; a test seam.
var logOutput io.Writer = os.Stdout

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, logOutput)

	shutdownTracing, err := telemetry.Setup(ctx, c.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, rm, err := repomanager.Open(ctx, c.StorageDriver, c.DatabaseDSN)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, tracing: shutdownTracing}
	if err := app.wire(ctx, rm); err != nil {
		_ = db.Close()
		_ = shutdownTracing(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) wire(ctx context.Context, rm repomanager.RepositoryManager) error {
	c := app.config

	creds := services.NewCredentialService(app.db, rm, app.logger)
	if c.BootstrapAdminPassword != "" {
		if err := creds.EnsureAdmin(ctx, c.BootstrapAdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	} else {
		ok, err := creds.AdminExists(ctx)
		if err != nil {
			return fmt.Errorf("check admin: %w", err)
		}
		if !ok {
			app.logger.Warn(ctx, "no admin user; operators cannot be provisioned until "+config.EnvPrefix+"BOOTSTRAP_ADMIN_PASSWORD is set")
		}
	}

	sessions := services.NewSessionService(app.db, rm, creds, c, app.logger)
	app.ledger = services.NewLedgerService(app.db, rm, notify.NewLogNotifier(app.logger), c, app.logger)

	var sink services.ReportSink
	if c.S3Bucket != "" {
		s3sink, err := export.NewS3Sink(ctx, c)
		if err != nil {
			return fmt.Errorf("report export init error: %w", err)
		}
		sink = s3sink
	}

	reports, err := services.NewReportService(app.db, rm, services.NewQueryService(app.db, rm), sink, c, app.logger)
	if err != nil {
		return fmt.Errorf("reports init error: %w", err)
	}

	app.grpc = gs.NewGRPCServer(c.GRPCAddr, app.logger, sessions, creds, app.ledger, reports)
	app.http = httpapi.NewServer(c.HTTPAddr, app.logger, sessions, reports, c.CORSOrigins)
	return nil
}

// Run serves gRPC and HTTP until ctx is done, a termination signal arrives
// or either server fails. Pending notifications are drained and storage is
// closed before it returns.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpc.Run(gctx) })
	g.Go(func() error { return app.http.Run(gctx) })

	err := g.Wait()

	app.ledger.Wait()
	if cerr := app.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if terr := app.tracing(context.WithoutCancel(ctx)); terr != nil {
		app.logger.Warn(ctx, "tracing shutdown failed", "error", terr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
