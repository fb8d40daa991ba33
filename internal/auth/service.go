// Package auth implements back-office credential login with redis-backed
// refresh sessions.
package auth

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/velora-shop/velora-backend/pkg/auth"
	"github.com/velora-shop/velora-backend/pkg/auth/session"
	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/security"
)

// LoginInput carries the submitted credentials. The username field also
// keys the per-account rate limit window.
type LoginInput struct {
	Username string `json:"username" validate:"required,min=1,max=60"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// RefreshInput rotates a session.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SessionResult is the token pair handed to the panel.
type SessionResult struct {
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
	Username     string              `json:"username"`
	DisplayName  *string             `json:"displayName,omitempty"`
	Role         string              `json:"role"`
	Permissions  pkgAuth.Permissions `json:"permissions"`
}

// UserFinder is the slice of the users repository auth needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SessionManager is the slice of the session manager auth needs.
type SessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service mints and rotates back-office sessions.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*SessionResult, error)
	Refresh(ctx context.Context, claims *pkgAuth.AccessTokenClaims, input RefreshInput) (*SessionResult, error)
	Logout(ctx context.Context, claims *pkgAuth.AccessTokenClaims) error
}

type service struct {
	users    UserFinder
	sessions SessionManager
	cfg      config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(users UserFinder, sessions SessionManager, cfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("auth service requires a user finder")
	}
	if sessions == nil {
		return nil, fmt.Errorf("auth service requires a session manager")
	}
	if logg == nil {
		return nil, fmt.Errorf("auth service requires a logger")
	}
	return &service{users: users, sessions: sessions, cfg: cfg, logg: logg, now: time.Now}, nil
}

// Login verifies the credentials and opens a session. Unknown accounts and
// wrong passwords share one message so usernames cannot be probed.
func (s *service) Login(ctx context.Context, input LoginInput) (*SessionResult, error) {
	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up user")
	}
	if user == nil || !user.IsActive {
		return nil, errors.New(errors.CodeUnauthorized, "invalid credentials")
	}
	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "verify password")
	}
	if !match {
		s.logg.Warn(s.logg.WithField(ctx, "username", user.Username), "auth.login.rejected")
		return nil, errors.New(errors.CodeUnauthorized, "invalid credentials")
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		// Non-fatal: the session is already valid.
		s.logg.Warn(s.logg.WithField(ctx, "username", user.Username), "auth.login.touch_failed")
	}
	s.logg.Info(s.logg.WithField(ctx, "username", user.Username), "auth.login.success")
	return result, nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (*SessionResult, error) {
	accessID := session.NewAccessID()
	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "open session")
	}
	permissions := pkgAuth.PermissionsFromUser(user)
	accessToken, err := pkgAuth.MintAccessToken(s.cfg, s.now(), pkgAuth.AccessTokenPayload{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: permissions,
		JTI:         accessID,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "mint access token")
	}
	return &SessionResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Role:         string(user.Role),
		Permissions:  permissions,
	}, nil
}

// Refresh rotates the refresh token and mints a fresh access token. The
// expired access token identifies the session being rotated.
func (s *service) Refresh(ctx context.Context, claims *pkgAuth.AccessTokenClaims, input RefreshInput) (*SessionResult, error) {
	if claims == nil || claims.ID == "" {
		return nil, errors.New(errors.CodeUnauthorized, "invalid session")
	}
	user, err := s.users.FindByUsername(ctx, claims.Username)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "look up user")
	}
	if user == nil || !user.IsActive {
		return nil, errors.New(errors.CodeUnauthorized, "invalid session")
	}

	newAccessID, newRefreshToken, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if stdErrors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, errors.New(errors.CodeUnauthorized, "invalid session")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "rotate session")
	}

	permissions := pkgAuth.PermissionsFromUser(user)
	accessToken, err := pkgAuth.MintAccessToken(s.cfg, s.now(), pkgAuth.AccessTokenPayload{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: permissions,
		JTI:         newAccessID,
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "mint access token")
	}
	return &SessionResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Role:         string(user.Role),
		Permissions:  permissions,
	}, nil
}

// Logout revokes the session behind the presented access token.
func (s *service) Logout(ctx context.Context, claims *pkgAuth.AccessTokenClaims) error {
	if claims == nil || claims.ID == "" {
		return errors.New(errors.CodeUnauthorized, "invalid session")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "revoke session")
	}
	s.logg.Info(s.logg.WithField(ctx, "username", claims.Username), "auth.logout")
	return nil
}
