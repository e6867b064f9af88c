// Package httpapi is a read-only HTTP gateway to the ledger reports, for
// dashboards and spreadsheet downloads. Requests carry the same bearer
// token as the gRPC API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/net/netutil"
)

const (
	shutdownTimeout = 5 * time.Second
	// MaxConnections caps concurrently open client connections.
	MaxConnections = 256
)

// Authenticator resolves bearer tokens to live sessions.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// Reports is the read side of the ledger served over HTTP.
type Reports interface {
	Query(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error)
	CountByDay(ctx context.Context) ([]models.DailyCount, error)
}

type Server struct {
	address string
	logger  logging.Logger
	auth    Authenticator
	reports Reports
	origins []string
}

func NewServer(a string, l logging.Logger, auth Authenticator, r Reports, origins []string) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    auth,
		reports: r,
		origins: origins,
	}
}

// Handler returns the routed gateway.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/attendance", s.handleAttendance)
		r.Get("/daily", s.handleDaily)
	})

	return r
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve handles requests on lis until ctx is done, then shuts down,
// letting in-flight requests finish for up to shutdownTimeout.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(netutil.LimitListener(lis, MaxConnections)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
