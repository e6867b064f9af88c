package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/services"
)

type ctxKey string

const sessionKey ctxKey = "session"

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		session, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
	})
}

func sessionFrom(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey).(*models.Session)
	return s
}

// fail maps a service error to an HTTP status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotAuthenticated), errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case common.IsStorageError(err):
		s.logger.Error(r.Context(), "storage failure", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		s.logger.Error(r.Context(), "internal failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// filterFromQuery constrains a column only when its parameter is present,
// so ?event= matches the empty label while a missing event matches all.
func filterFromQuery(q url.Values) models.AttendanceFilter {
	var f models.AttendanceFilter
	if v, ok := q["name"]; ok && len(v) > 0 {
		f.SubjectName = &v[0]
	}
	if v, ok := q["event"]; ok && len(v) > 0 {
		f.EventLabel = &v[0]
	}
	return f
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be csv or json")
		return
	}

	events, err := s.reports.Query(r.Context(), filterFromQuery(q))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if session := sessionFrom(r.Context()); session != nil {
		s.logger.Debug(r.Context(), "attendance report", "user", session.UserName, "rows", len(events), "format", format)
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
		if err := services.WriteCSV(w, events); err != nil {
			s.logger.Warn(r.Context(), "csv write failed", "error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	days, err := s.reports.CountByDay(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}
