package controller

import (
	"context"
	"testing"

	"github.com/tgienger/yusra/internal/api"
	"github.com/tgienger/yusra/internal/session"
)

func newAuth(t *testing.T, fake AuthAPI) (*Auth, *session.Session) {
	t.Helper()
	sess, err := session.Open(session.NewMemoryStore())
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return NewAuth(context.Background(), fake, sess, discardLogger()), sess
}

func TestLoginStoresTokens(t *testing.T) {
	c, sess := newAuth(t, &fakeAPI{})

	msgs := run(c.Login("me@example.com", "secret"), c.Update)

	if _, ok := msgs[len(msgs)-1].(LoggedIn); !ok {
		t.Fatalf("expected LoggedIn, got %T", msgs[len(msgs)-1])
	}
	if sess.AccessToken() != "access" || sess.RefreshToken() != "refresh" {
		t.Fatalf("expected tokens stored, got %q %q", sess.AccessToken(), sess.RefreshToken())
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	c, sess := newAuth(t, &fakeAPI{})

	msgs := run(c.Login("me@example.com", "wrong"), c.Update)

	failed, ok := msgs[len(msgs)-1].(AuthFailed)
	if !ok {
		t.Fatalf("expected AuthFailed, got %T", msgs[len(msgs)-1])
	}
	if failed.Message != "Invalid email or password" {
		t.Fatalf("unexpected message %q", failed.Message)
	}
	if sess.LoggedIn() {
		t.Fatalf("expected no stored credential")
	}
}

func TestRegisterFailureFallsBack(t *testing.T) {
	fake := &fakeAPI{failAll: &api.NetworkError{Method: "POST", Path: "/auth/register", Err: context.DeadlineExceeded}}
	c, _ := newAuth(t, fake)

	msgs := run(c.Register("Me", "me@example.com", "pw"), c.Update)

	failed, ok := msgs[len(msgs)-1].(AuthFailed)
	if !ok || failed.Message != "Registration failed" {
		t.Fatalf("expected fallback message, got %#v", msgs[len(msgs)-1])
	}
}

func TestLogoutClearsSession(t *testing.T) {
	c, sess := newAuth(t, &fakeAPI{})
	run(c.Login("me@example.com", "secret"), c.Update)

	msgs := run(c.Logout(), c.Update)

	if _, ok := msgs[0].(LoggedOut); !ok {
		t.Fatalf("expected LoggedOut, got %T", msgs[0])
	}
	if sess.LoggedIn() || sess.RefreshToken() != "" {
		t.Fatalf("expected session cleared")
	}
}
