package service

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewProfileService(gdb)

	user, err := svc.Register("newbie", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := svc.Register("newbie", "another"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Register("  ", "pw"); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := svc.Register("someone", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}

	authed, err := svc.Authenticate("newbie", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("unexpected user %d", authed.ID)
	}

	if _, err := svc.Authenticate("newbie", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("ghost", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewProfileService(gdb)

	user := createUser(t, gdb, "writer")

	if _, err := svc.Update(Viewer{}, ProfileInput{Bio: "x"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	updated, err := svc.Update(viewerOf(user), ProfileInput{
		FirstName: " 小 ",
		LastName:  " 王 ",
		Bio:       " 写作的人 ",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "小" || updated.LastName != "王" || updated.Bio != "写作的人" {
		t.Fatalf("fields not trimmed: %+v", updated)
	}
	if updated.DisplayName() != "小 王" {
		t.Fatalf("unexpected display name %q", updated.DisplayName())
	}

	if _, err := svc.GetByUsername("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
