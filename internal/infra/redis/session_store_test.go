package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, "lsm:session", time.Minute)

	saved := domain.Session{Token: "tok-1", UserName: "Ana", UserType: domain.UserTypeNormal}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("lsm:session") {
		t.Fatalf("expected redis key to be set")
	}

	session, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if session != saved {
		t.Fatalf("expected %+v, got %+v", saved, session)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists("lsm:session") {
		t.Fatalf("expected redis key to be removed")
	}
	session, _ = store.Read(ctx)
	if session.LoggedIn() {
		t.Fatalf("expected empty session after clear, got %+v", session)
	}
}

func TestSessionStoreReadMissingKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, "", 0)

	session, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if session.LoggedIn() {
		t.Fatalf("expected absent token, got %+v", session)
	}
}
