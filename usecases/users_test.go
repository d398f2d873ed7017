package usecases

import (
	"testing"

	"iot-manager/errs"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	e := newEnv(t)
	e.user(t, "alice")

	_, err := e.userUC.Register(UserRegister{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.user(t, "alice")

	_, err := e.userUC.Register(UserRegister{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	e := newEnv(t)
	user := e.user(t, "alice")

	if user.HashedPassword == "secret123" || user.HashedPassword == "" {
		t.Fatalf("password stored in the clear or empty: %q", user.HashedPassword)
	}
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	e.user(t, "alice")

	tests := []struct {
		name     string
		username string
		password string
		wantKind errs.Kind
	}{
		{"valid credentials", "alice", "secret123", errs.KindUnknown},
		{"wrong password", "alice", "wrong", errs.KindUnauthenticated},
		{"unknown user", "nobody", "secret123", errs.KindUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.userUC.Authenticate(tt.username, tt.password)
			if tt.wantKind == errs.KindUnknown {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if errs.KindOf(err) != tt.wantKind {
				t.Fatalf("expected kind %v, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestUserUpdatePartial(t *testing.T) {
	e := newEnv(t)
	user := e.user(t, "alice")

	updated, err := e.userUC.Update(user.ID, UserUpdate{Email: ptr("new@example.com")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Fatalf("email not updated: %q", updated.Email)
	}
	if updated.Username != "alice" {
		t.Fatalf("username should be untouched, got %q", updated.Username)
	}
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	e := newEnv(t)
	user := e.user(t, "alice")
	oldHash := user.HashedPassword

	updated, err := e.userUC.Update(user.ID, UserUpdate{Password: ptr("newsecret")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HashedPassword == oldHash || updated.HashedPassword == "newsecret" {
		t.Fatalf("password not rehashed")
	}
	if _, err := e.userUC.Authenticate("alice", "newsecret"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
}

func TestUserDelete(t *testing.T) {
	e := newEnv(t)
	user := e.user(t, "alice")

	if err := e.userUC.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.userUC.Get(user.ID); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := e.userUC.Delete(user.ID); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
