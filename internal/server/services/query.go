package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
)

// QueryService reads the ledger.
type QueryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQueryService(db *sql.DB, m repomanager.RepositoryManager) *QueryService {
	return &QueryService{db: db, repomanager: m}
}

// Query returns the events matching filter in insertion order. A nil
// filter field places no constraint; set fields are combined with AND.
// The result is a fresh slice, never nil.
func (s *QueryService) Query(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceEvent, error) {
	repo := s.repomanager.Attendance(s.db)
	return dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) ([]models.AttendanceEvent, error) {
		return repo.Find(ctx, filter)
	})
}
