package services_test

import (
	"errors"
	"testing"

	"vitrine/internal/domain"
	"vitrine/internal/repos"
	"vitrine/internal/services"
)

func TestAuthService_LoginAndSession(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	svc := &services.AuthService{Users: repos.NewUserRepo(db)}

	if _, err := svc.Login("sid-1", "marina@vitrine.test", "errada"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("wrong password: want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Login("sid-1", "fantasma@vitrine.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown email: want ErrBadCreds, got %v", err)
	}
	if _, err := svc.CurrentUser("sid-1"); err == nil {
		t.Fatal("failed logins must not bind the session")
	}

	u, err := svc.Login("sid-1", "marina@vitrine.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "u-marina" || u.Role != domain.RoleSeller {
		t.Fatalf("bad login result: %+v", u)
	}

	db.MustExec(`UPDATE sessions SET last_seen=NULL WHERE id='sid-1'`)
	got, err := svc.CurrentUser("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "u-marina" {
		t.Fatalf("session resolved to %q", got.ID)
	}
	var lastSeen string
	if err := db.Get(&lastSeen, `SELECT COALESCE(last_seen,'') FROM sessions WHERE id='sid-1'`); err != nil {
		t.Fatal(err)
	}
	if lastSeen == "" {
		t.Fatal("resolving a session must stamp last_seen")
	}

	if err := svc.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CurrentUser("sid-1"); err == nil {
		t.Fatal("logged-out session must not resolve")
	}
}

func TestAuthService_CanManage(t *testing.T) {
	seller := &domain.User{ID: "s1", Role: domain.RoleSeller}
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	if !seller.CanManage("s1") || seller.CanManage("s2") {
		t.Fatal("sellers manage only their own records")
	}
	if !admin.CanManage("s1") || !admin.CanManage("s2") {
		t.Fatal("admins manage any record")
	}
	var none *domain.User
	if none.CanManage("s1") {
		t.Fatal("nil user manages nothing")
	}
}
