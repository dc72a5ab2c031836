package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nouh2/gaia-admin-tui/internal/models"
)

type fakeLoader struct {
	users      []models.User
	convs      []models.Conversation
	userCalls  int
	convCalls  int
	byUserCall int
	err        error
}

func (f *fakeLoader) ListUsers(ctx context.Context) ([]models.User, error) {
	f.userCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func (f *fakeLoader) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	f.convCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.convs, nil
}

func (f *fakeLoader) ListUserConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	f.byUserCall++
	var out []models.Conversation
	for _, c := range f.convs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestService(loader *fakeLoader, ttl time.Duration) (*Service, *time.Time) {
	svc := New(loader, ttl)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestUsers_CachedWithinTTL(t *testing.T) {
	loader := &fakeLoader{users: []models.User{{ID: "u1", Email: "a@b.c"}}}
	svc, clock := newTestService(loader, 60*time.Second)
	ctx := context.Background()

	first, err := svc.Users(ctx)
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	*clock = clock.Add(30 * time.Second)
	second, err := svc.Users(ctx)
	if err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	if loader.userCalls != 1 {
		t.Errorf("loader called %d times within TTL, want 1", loader.userCalls)
	}
	if &first[0] != &second[0] {
		t.Error("expected identical backing slice within TTL")
	}
}

func TestUsers_RefreshAfterTTL(t *testing.T) {
	loader := &fakeLoader{users: []models.User{{ID: "u1"}}}
	svc, clock := newTestService(loader, 60*time.Second)
	ctx := context.Background()

	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	*clock = clock.Add(61 * time.Second)
	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	if loader.userCalls != 2 {
		t.Errorf("loader called %d times after TTL expiry, want 2", loader.userCalls)
	}
}

func TestUsers_StaleOnRefreshFailure(t *testing.T) {
	loader := &fakeLoader{users: []models.User{{ID: "u1"}}}
	svc, clock := newTestService(loader, 60*time.Second)
	ctx := context.Background()

	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	loader.err = errors.New("store down")
	*clock = clock.Add(2 * time.Minute)

	users, err := svc.Users(ctx)
	if err == nil {
		t.Fatal("expected refresh error")
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Errorf("expected stale snapshot alongside error, got %v", users)
	}
}

func TestUsers_ErrorWithNoPriorSnapshot(t *testing.T) {
	loader := &fakeLoader{err: errors.New("store down")}
	svc, _ := newTestService(loader, 60*time.Second)

	users, err := svc.Users(context.Background())
	if err == nil {
		t.Fatal("expected error on first load failure")
	}
	if users != nil {
		t.Errorf("expected nil snapshot, got %v", users)
	}
}

func TestConversations_IndependentExpiry(t *testing.T) {
	loader := &fakeLoader{
		users: []models.User{{ID: "u1"}},
		convs: []models.Conversation{{ID: "c1", UserID: "u1"}},
	}
	svc, clock := newTestService(loader, 60*time.Second)
	ctx := context.Background()

	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	*clock = clock.Add(40 * time.Second)
	if _, err := svc.Conversations(ctx); err != nil {
		t.Fatalf("Conversations() error = %v", err)
	}

	// Users expires at +60s, conversations at +100s.
	*clock = clock.Add(30 * time.Second)
	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	if _, err := svc.Conversations(ctx); err != nil {
		t.Fatalf("Conversations() error = %v", err)
	}

	if loader.userCalls != 2 {
		t.Errorf("user loads = %d, want 2", loader.userCalls)
	}
	if loader.convCalls != 1 {
		t.Errorf("conversation loads = %d, want 1", loader.convCalls)
	}
}

func TestUserConversations_BypassesCache(t *testing.T) {
	loader := &fakeLoader{convs: []models.Conversation{
		{ID: "c1", UserID: "u1"},
		{ID: "c2", UserID: "u2"},
	}}
	svc, _ := newTestService(loader, 60*time.Second)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		convs, err := svc.UserConversations(ctx, "u1")
		if err != nil {
			t.Fatalf("UserConversations() error = %v", err)
		}
		if len(convs) != 1 || convs[0].ID != "c1" {
			t.Errorf("got %v, want [c1]", convs)
		}
	}

	if loader.byUserCall != 3 {
		t.Errorf("per-user lookup called %d times, want 3 (never cached)", loader.byUserCall)
	}
}

func TestInvalidate(t *testing.T) {
	loader := &fakeLoader{users: []models.User{{ID: "u1"}}}
	svc, _ := newTestService(loader, 60*time.Second)
	ctx := context.Background()

	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	svc.Invalidate()
	if _, err := svc.Users(ctx); err != nil {
		t.Fatalf("Users() error = %v", err)
	}

	if loader.userCalls != 2 {
		t.Errorf("loader called %d times after Invalidate, want 2", loader.userCalls)
	}
}

func TestAge(t *testing.T) {
	loader := &fakeLoader{users: []models.User{{ID: "u1"}}}
	svc, clock := newTestService(loader, 60*time.Second)

	if _, ok := svc.Age(); ok {
		t.Error("Age() should report false before any load")
	}

	if _, err := svc.Users(context.Background()); err != nil {
		t.Fatalf("Users() error = %v", err)
	}
	*clock = clock.Add(25 * time.Second)

	age, ok := svc.Age()
	if !ok {
		t.Fatal("Age() should report true after a load")
	}
	if age != 25*time.Second {
		t.Errorf("Age() = %v, want 25s", age)
	}
}
