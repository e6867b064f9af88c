package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/auth"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
)

// SessionService turns credentials into sessions and authorizes privileged
// calls. A session lives from Login until Logout; there is no expiry, and a
// user may hold several sessions at once.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	credentials *CredentialService
	jwtSecret   []byte
	log         logging.Logger
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, creds *CredentialService, cfg *config.Config, l logging.Logger) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		credentials: creds,
		jwtSecret:   []byte(cfg.SecretKey),
		log:         l.With("module", "sessions"),
	}
}

// Login verifies the credentials and opens a session. Any mismatch yields
// common.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, username, secret string) (*models.Session, error) {
	user, err := s.credentials.authenticate(ctx, username, secret)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.log.Info(ctx, "login rejected", "username", username)
		}
		return nil, err
	}

	repo := s.repomanager.Sessions(s.db)
	session, err := dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) (*models.Session, error) {
		return repo.Create(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	session.UserName = user.UserName
	session.Role = user.Role

	token, err := auth.GenerateToken(session.ID, user.UserName, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorInternal
	}
	session.Token = token

	s.log.Info(ctx, "login", "username", user.UserName, "session", session.ID)
	return session, nil
}

// Logout ends the session. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return common.ErrNotAuthenticated
	}
	repo := s.repomanager.Sessions(s.db)
	if err := dbx.Retry(ctx, dbx.DefaultRetries, func(ctx context.Context) error {
		return repo.Delete(ctx, session.ID)
	}); err != nil {
		return err
	}
	s.log.Info(ctx, "logout", "username", session.UserName, "session", session.ID)
	return nil
}

// Authenticate resolves a bearer token to its live session, or
// common.ErrNotAuthenticated.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrNotAuthenticated
	}

	session, err := s.find(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	session.Token = token
	return session, nil
}

// RequireAdmin succeeds iff session is live and its user holds the admin
// role. Logged-out or missing sessions yield common.ErrNotAuthenticated,
// live non-admin sessions common.ErrForbidden.
func (s *SessionService) RequireAdmin(ctx context.Context, session *models.Session) error {
	if session == nil {
		return common.ErrNotAuthenticated
	}

	live, err := s.find(ctx, session.ID)
	if err != nil {
		return err
	}
	if !live.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

func (s *SessionService) find(ctx context.Context, id string) (*models.Session, error) {
	repo := s.repomanager.Sessions(s.db)
	session, err := dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) (*models.Session, error) {
		return repo.Find(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNotAuthenticated
		}
		return nil, err
	}
	return session, nil
}
