package memory

import (
	"context"
	"testing"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if session.LoggedIn() {
		t.Fatalf("expected empty session, got %+v", session)
	}

	saved := domain.Session{Token: "tok-1", UserName: "Ana", UserType: domain.UserTypeNormal}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	session, _ = store.Read(ctx)
	if session != saved {
		t.Fatalf("expected %+v, got %+v", saved, session)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	session, _ = store.Read(ctx)
	if session.LoggedIn() {
		t.Fatalf("expected cleared session, got %+v", session)
	}
}
