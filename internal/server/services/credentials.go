// Package services contains the server-side business logic: credential
// provisioning and verification, sessions, the attendance ledger, queries
// and reports. Services take a *sql.DB and a RepositoryManager and pick the
// repositories they need per call, the same way for both storage backends.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/cryptox"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
)

// Seams for tests that cannot afford Argon2id parameters.
var (
	hashSecret   = cryptox.HashSecret
	verifySecret = cryptox.VerifySecret
)

// CredentialService owns the user registry.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *CredentialService {
	return &CredentialService{db: db, repomanager: m, log: l.With("module", "credentials")}
}

// Provision registers username with secret. The role is derived from the
// username. Concurrent provisioning of one username lets exactly one
// caller win; the others get common.ErrDuplicateUsername.
func (s *CredentialService) Provision(ctx context.Context, username, secret string) (*models.User, error) {
	salt := cryptox.NewSalt()
	user := &models.User{
		UserName:   username,
		Salt:       salt,
		SecretHash: hashSecret([]byte(secret), salt),
		Role:       models.RoleForUsername(username),
	}

	repo := s.repomanager.Users(s.db)
	u, err := dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) (*models.User, error) {
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user provisioned", "username", u.UserName, "role", u.Role)
	return u, nil
}

// Verify reports whether secret is the current secret of username. Unknown
// users and wrong secrets both yield false.
func (s *CredentialService) Verify(ctx context.Context, username, secret string) (bool, error) {
	_, err := s.authenticate(ctx, username, secret)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrInvalidCredentials):
		return false, nil
	default:
		return false, err
	}
}

// authenticate returns the user when secret matches, else
// common.ErrInvalidCredentials. For unknown users the hash is still
// computed so the response time does not reveal whether the user exists.
func (s *CredentialService) authenticate(ctx context.Context, username, secret string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) (*models.User, error) {
		return repo.GetUserByLogin(ctx, username)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = hashSecret([]byte(secret), cryptox.NewSalt())
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !verifySecret([]byte(secret), user.Salt, user.SecretHash) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdmin provisions the admin user with password unless it already
// exists.
func (s *CredentialService) EnsureAdmin(ctx context.Context, password string) error {
	_, err := s.Provision(ctx, common.AdminUsername, password)
	if errors.Is(err, common.ErrDuplicateUsername) {
		s.log.Debug(ctx, "admin user already provisioned")
		return nil
	}
	return err
}

// AdminExists reports whether the admin user has been provisioned.
func (s *CredentialService) AdminExists(ctx context.Context) (bool, error) {
	repo := s.repomanager.Users(s.db)
	_, err := dbx.RetryWithResult(ctx, dbx.DefaultRetries, func(ctx context.Context) (*models.User, error) {
		return repo.GetUserByLogin(ctx, common.AdminUsername)
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	default:
		return false, err
	}
}
