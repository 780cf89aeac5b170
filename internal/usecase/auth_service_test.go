package usecase_test

import (
	"context"
	"testing"
	"time"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

func authFixture() *usecase.AuthService {
	return &usecase.AuthService{
		Stores:    memory.New(),
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
	}
}

func TestSignupAndSignin(t *testing.T) {
	ctx := context.Background()
	svc := authFixture()

	user, token, err := svc.Signup(ctx, "buyer@example.com", "passw0rd1", "passw0rd1", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != domain.RoleBuyer {
		t.Errorf("default role = %s, want buyer", user.Role)
	}
	if token == "" {
		t.Error("signup returned no token")
	}

	if _, _, err := svc.Signin(ctx, "buyer@example.com", "passw0rd1"); err != nil {
		t.Errorf("signin: %v", err)
	}
	if _, _, err := svc.Signin(ctx, "buyer@example.com", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, _, err := svc.Signin(ctx, "nobody@example.com", "passw0rd1"); err == nil {
		t.Error("unknown email accepted")
	}
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc := authFixture()

	cases := []struct {
		name              string
		password, confirm string
		role              domain.UserRole
	}{
		{"too short", "a1", "a1", ""},
		{"no digit", "password", "password", ""},
		{"no letter", "12345678", "12345678", ""},
		{"mismatch", "passw0rd1", "passw0rd2", ""},
		{"admin role", "passw0rd1", "passw0rd1", domain.RoleAdmin},
	}
	for _, tc := range cases {
		if _, _, err := svc.Signup(ctx, "x@example.com", tc.password, tc.confirm, tc.role); !usecase.IsInvalidState(err) {
			t.Errorf("%s: err = %v, want invalid state", tc.name, err)
		}
	}

	if _, _, err := svc.Signup(ctx, "dup@example.com", "passw0rd1", "passw0rd1", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, err := svc.Signup(ctx, "dup@example.com", "passw0rd1", "passw0rd1", ""); !usecase.IsInvalidState(err) {
		t.Errorf("duplicate email err = %v, want invalid state", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := authFixture()

	user, token, err := svc.Signup(ctx, "seller@example.com", "passw0rd1", "", domain.RoleSeller)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	resolved, err := svc.UserFromToken(ctx, token)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if resolved.ID != user.ID || resolved.Role != domain.RoleSeller {
		t.Errorf("resolved user = %+v", resolved)
	}

	if _, err := svc.UserFromToken(ctx, token+"tampered"); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestTokenRejectedForInactiveUser(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.AuthService{Stores: store, JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}

	user, token, err := svc.Signup(ctx, "banned@example.com", "passw0rd1", "", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	user.Status = domain.UserBanned
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("ban user: %v", err)
	}

	// A live token must stop working the moment the account is not active.
	if _, err := svc.UserFromToken(ctx, token); err == nil {
		t.Error("banned user's token accepted")
	}
	if _, _, err := svc.Signin(ctx, "banned@example.com", "passw0rd1"); err == nil {
		t.Error("banned user signed in")
	}
}
