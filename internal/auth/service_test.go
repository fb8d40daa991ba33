package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/velora-shop/velora-backend/pkg/auth"
	"github.com/velora-shop/velora-backend/pkg/auth/session"
	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	pkgerrors "github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/security"
)

type fakeUserFinder struct {
	users   map[string]*models.User
	touched []uuid.UUID
}

func (f *fakeUserFinder) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func (f *fakeUserFinder) TouchLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeSessions struct {
	generated []string
	revoked   []string
	rotateErr error
}

func (f *fakeSessions) Generate(_ context.Context, accessID string) (string, error) {
	f.generated = append(f.generated, accessID)
	return "refresh-" + accessID, nil
}

func (f *fakeSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateErr != nil {
		return "", "", f.rotateErr
	}
	if provided != "refresh-"+oldAccessID {
		return "", "", session.ErrInvalidRefreshToken
	}
	newID := "rotated-" + oldAccessID
	return newID, "refresh-" + newID, nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

func authTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "velora-test",
		ExpirationMinutes: 30,
	}
}

func authTestUser(t *testing.T, username, password string, active bool) *models.User {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:              uuid.New(),
		Username:        username,
		PasswordHash:    hash,
		Role:            enums.RoleManager,
		IsActive:        active,
		CanManageOrders: true,
	}
}

func newAuthTestService(t *testing.T, finder *fakeUserFinder, sessions *fakeSessions) Service {
	t.Helper()

	svc, err := NewService(finder, sessions, authTestJWTConfig(), logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	user := authTestUser(t, "amira", "correct horse battery", true)
	finder := &fakeUserFinder{users: map[string]*models.User{"amira": user}}
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, finder, sessions)

	result, err := svc.Login(context.Background(), LoginInput{Username: "amira", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Username != "amira" || result.Role != "manager" {
		t.Fatalf("unexpected session result: %+v", result)
	}
	if !result.Permissions.ManageOrders {
		t.Fatalf("expected manage_orders grant to survive into the session")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}
	if result.RefreshToken != "refresh-"+sessions.generated[0] {
		t.Fatalf("refresh token does not match the opened session")
	}
	if len(finder.touched) != 1 || finder.touched[0] != user.ID {
		t.Fatalf("expected last login touch for %s", user.ID)
	}

	claims, err := pkgAuth.ParseAccessToken(authTestJWTConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Username != "amira" || claims.ID != sessions.generated[0] {
		t.Fatalf("access token claims do not match the session: %+v", claims)
	}
}

func TestLoginRejections(t *testing.T) {
	user := authTestUser(t, "amira", "correct horse battery", true)
	disabled := authTestUser(t, "ghost", "whatever password", false)
	finder := &fakeUserFinder{users: map[string]*models.User{"amira": user, "ghost": disabled}}
	svc := newAuthTestService(t, finder, &fakeSessions{})

	cases := map[string]LoginInput{
		"unknownUser":   {Username: "nobody", Password: "correct horse battery"},
		"wrongPassword": {Username: "amira", Password: "guess"},
		"inactiveUser":  {Username: "ghost", Password: "whatever password"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), input)
			if err == nil {
				t.Fatalf("expected login to fail")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if typed.Error() != "invalid credentials" {
				t.Fatalf("rejections must share one message, got %q", typed.Error())
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	user := authTestUser(t, "amira", "correct horse battery", true)
	finder := &fakeUserFinder{users: map[string]*models.User{"amira": user}}
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, finder, sessions)

	claims := &pkgAuth.AccessTokenClaims{Username: "amira"}
	claims.ID = "old-access"

	result, err := svc.Refresh(context.Background(), claims, RefreshInput{RefreshToken: "refresh-old-access"})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if result.RefreshToken != "refresh-rotated-old-access" {
		t.Fatalf("expected rotated refresh token, got %q", result.RefreshToken)
	}
	parsed, err := pkgAuth.ParseAccessToken(authTestJWTConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if parsed.ID != "rotated-old-access" {
		t.Fatalf("new access token must carry the rotated session id, got %q", parsed.ID)
	}

	t.Run("staleRefreshToken", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), claims, RefreshInput{RefreshToken: "refresh-someone-else"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("nilClaims", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), nil, RefreshInput{RefreshToken: "refresh-old-access"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("storeFailureIsDependency", func(t *testing.T) {
		sessions.rotateErr = errors.New("redis down")
		defer func() { sessions.rotateErr = nil }()

		_, err := svc.Refresh(context.Background(), claims, RefreshInput{RefreshToken: "refresh-old-access"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeDependency {
			t.Fatalf("expected dependency error, got %v", err)
		}
	})
}

func TestLogout(t *testing.T) {
	user := authTestUser(t, "amira", "correct horse battery", true)
	finder := &fakeUserFinder{users: map[string]*models.User{"amira": user}}
	sessions := &fakeSessions{}
	svc := newAuthTestService(t, finder, sessions)

	claims := &pkgAuth.AccessTokenClaims{Username: "amira"}
	claims.ID = "live-access"
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "live-access" {
		t.Fatalf("expected session revocation, got %v", sessions.revoked)
	}

	if err := svc.Logout(context.Background(), nil); err == nil {
		t.Fatalf("expected logout without claims to fail")
	}
}
