package services

import (
	"context"
	"testing"
	"time"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/requestdata"
	"github.com/studypilot/studypilot-backend/internal/types"
)

func (env *testEnv) authService() AuthService {
	tokenRepo := repos.NewUserTokenRepo(env.db, env.log)
	return NewAuthService(env.db, env.log, env.userRepo, tokenRepo,
		"test-secret", time.Hour, 24*time.Hour)
}

func TestRegisterUser_HashesPasswordAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService()

	user := &types.User{Email: "Alice@Example.com", FullName: "Alice Smith", Password: "hunter22"}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "hunter22" {
		t.Fatalf("password stored in plain text")
	}

	dup := &types.User{Email: "alice@example.com", FullName: "Other Alice", Password: "different"}
	err := svc.RegisterUser(context.Background(), dup)
	if err == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
	if apiErr := apierr.From(err); apiErr == nil || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginUser_IssuesTokensAndRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService()

	user := &types.User{Email: "bob@example.com", FullName: "Bob", Password: "secret-pw"}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	access, refresh, err := svc.LoginUser(context.Background(), "bob@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("LoginUser failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("empty token pair")
	}

	if _, _, err := svc.LoginUser(context.Background(), "bob@example.com", "wrong"); err == nil {
		t.Fatalf("expected bad password to fail")
	} else if apiErr := apierr.From(err); apiErr == nil || apiErr.Code != apierr.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSetContextFromToken_PopulatesRequestData(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService()

	user := &types.User{Email: "carol@example.com", FullName: "Carol", Password: "secret-pw"}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	access, refresh, err := svc.LoginUser(context.Background(), "carol@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("LoginUser failed: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken failed: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("no request data in context")
	}
	if rd.UserID != user.ID {
		t.Fatalf("user id = %v, want %v", rd.UserID, user.ID)
	}
	if rd.RefreshToken != refresh {
		t.Fatalf("refresh token not resolved from access token")
	}

	if _, err := svc.SetContextFromToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("expected garbage token to fail")
	}
}

func TestRefreshUser_RotatesTokenPair(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService()

	user := &types.User{Email: "dave@example.com", FullName: "Dave", Password: "secret-pw"}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	access, refresh, err := svc.LoginUser(context.Background(), "dave@example.com", "secret-pw")
	if err != nil {
		t.Fatalf("LoginUser failed: %v", err)
	}

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
	})
	newAccess, newRefresh, err := svc.RefreshUser(ctx)
	if err != nil {
		t.Fatalf("RefreshUser failed: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token was not rotated")
	}
	if newAccess == "" {
		t.Fatalf("empty rotated access token")
	}
	// Rotation can land in the same second as the login, so the rotated
	// token must differ even when iat and exp match.
	if newAccess == access {
		t.Fatalf("access token was not rotated")
	}

	// The old pair is invalidated by rotation.
	if _, _, err := svc.RefreshUser(ctx); err == nil {
		t.Fatalf("expected stale refresh token to be rejected")
	}
}
