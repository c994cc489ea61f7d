package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := &domain.Session{
		UserID:   "usr-1",
		Email:    "ops@urban-threads.example",
		Name:     "Ops User",
		Role:     "treasurer",
		EntityID: "urban-threads",
	}
	if err := store.Put(ctx, "tok-1", session, time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != session.Email || got.EntityID != session.EntityID {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestSessionStoreUnknownToken(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "tok-1", &domain.Session{EntityID: "urban-threads"}, time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	if err := store.Put(ctx, "tok-1", &domain.Session{EntityID: "urban-threads"}, time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
