package repo

import (
	"context"
	"errors"
	"testing"
)

func TestAuthenticateHidesFailureCause(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepo(conn)
	seedUser(t, conn, "alice", "user")
	ctx := context.Background()

	_, errUnknown := users.Authenticate(ctx, "nobody", "secret-pass")
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", errUnknown)
	}
	_, errWrongPass := users.Authenticate(ctx, "alice", "wrong")
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("failure causes must be indistinguishable: %q vs %q", errUnknown, errWrongPass)
	}

	user, errOK := users.Authenticate(ctx, "alice", "secret-pass")
	if errOK != nil {
		t.Fatalf("valid credentials: %v", errOK)
	}
	if user.Username != "alice" || user.Role != "user" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestCreateUserValidation(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepo(conn)
	ctx := context.Background()

	if _, err := users.Create(ctx, "", "secret-pass", "user"); err == nil {
		t.Fatalf("empty username must be rejected")
	}
	if _, err := users.Create(ctx, "alice", "", "user"); err == nil {
		t.Fatalf("empty password must be rejected")
	}
	_, errRole := users.Create(ctx, "alice", "secret-pass", "astronaut")
	if vErr, ok := AsValidation(errRole); !ok || vErr.Field != "role" {
		t.Fatalf("unknown role must be rejected, got %v", errRole)
	}

	// Role tags normalize on write.
	user, errCreate := users.Create(ctx, "alice", "secret-pass", "  Boss  ")
	if errCreate != nil {
		t.Fatalf("create: %v", errCreate)
	}
	if user.Role != "boss" {
		t.Fatalf("expected normalized role, got %q", user.Role)
	}
}

func TestGetUserIsSelfOnly(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepo(conn)
	alice := seedUser(t, conn, "alice", "user")
	bob := seedUser(t, conn, "bob", "user")
	ctx := context.Background()

	view, errSelf := users.Get(ctx, alice, alice.UserID)
	if errSelf != nil {
		t.Fatalf("self lookup: %v", errSelf)
	}
	if view.Username != "alice" || view.RoleName == "" {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, errForeign := users.Get(ctx, alice, bob.UserID); !errors.Is(errForeign, ErrNotFound) {
		t.Fatalf("foreign lookup must read as not found, got %v", errForeign)
	}
}

func TestChangePassword(t *testing.T) {
	conn := newTestDB(t)
	users := NewUserRepo(conn)
	alice := seedUser(t, conn, "alice", "user")
	ctx := context.Background()

	errWrong := users.ChangePassword(ctx, alice, "wrong", "new-secret")
	if vErr, ok := AsValidation(errWrong); !ok || vErr.Field != "currentPassword" {
		t.Fatalf("wrong current password: got %v", errWrong)
	}

	errShort := users.ChangePassword(ctx, alice, "secret-pass", "abc")
	if vErr, ok := AsValidation(errShort); !ok || vErr.Field != "newPassword" {
		t.Fatalf("short new password: got %v", errShort)
	}

	if errChange := users.ChangePassword(ctx, alice, "secret-pass", "new-secret"); errChange != nil {
		t.Fatalf("change password: %v", errChange)
	}
	if _, errOld := users.Authenticate(ctx, "alice", "secret-pass"); !errors.Is(errOld, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", errOld)
	}
	if _, errNew := users.Authenticate(ctx, "alice", "new-secret"); errNew != nil {
		t.Fatalf("new password must work: %v", errNew)
	}
}
