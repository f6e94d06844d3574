package session

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, model.Session{Token: "tok-1", Role: model.RoleClient})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Token != "tok-1" {
		t.Errorf("Token = %q, want %q", got.Token, "tok-1")
	}
	if got.Role != model.RoleClient {
		t.Errorf("Role = %q, want %q", got.Role, model.RoleClient)
	}
}

func TestMemoryStoreRejectsPartialSession(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	cases := []model.Session{
		{Token: "tok-1"},             // role absent
		{Role: model.RoleAdmin},      // token absent
		{Token: "tok-1", Role: "x"},  // unknown role
		{},                           // both absent
	}
	for _, sess := range cases {
		if _, err := s.Create(ctx, sess); err != ErrInvalidSession {
			t.Errorf("Create(%+v) error = %v, want ErrInvalidSession", sess, err)
		}
	}
}

func TestMemoryStoreDeleteClearsBoth(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, model.Session{Token: "tok-1", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get(ctx, id); err != ErrNoSession {
		t.Errorf("Get after Delete error = %v, want ErrNoSession", err)
	}
	// deleting again is a no-op, not an error
	if err := s.Delete(ctx, id); err != nil {
		t.Errorf("second Delete returned error: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(30 * time.Minute)
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	id, err := s.Create(ctx, model.Session{Token: "tok-1", Role: model.RoleClient})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	now = now.Add(29 * time.Minute)
	if _, err := s.Get(ctx, id); err != nil {
		t.Fatalf("Get before expiry returned error: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, id); err != ErrNoSession {
		t.Errorf("Get after expiry error = %v, want ErrNoSession", err)
	}
}

func TestMemoryStoreGetUnknownID(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	if _, err := s.Get(context.Background(), "nope"); err != ErrNoSession {
		t.Errorf("Get(unknown) error = %v, want ErrNoSession", err)
	}
}
