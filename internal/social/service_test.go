package social

import (
	"context"
	"testing"

	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
)

// Mock implementations for testing

type mockSocialStore struct {
	users   map[string]graph.User
	follows map[string]map[string]bool
}

func newMockSocialStore(users ...graph.User) *mockSocialStore {
	m := &mockSocialStore{
		users:   map[string]graph.User{},
		follows: map[string]map[string]bool{},
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockSocialStore) GetUserByID(ctx context.Context, id string) (*graph.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (m *mockSocialStore) GetUserByUsername(ctx context.Context, username string) (*graph.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *mockSocialStore) Follow(ctx context.Context, actorID, targetID string) (*graph.User, error) {
	actor, ok := m.users[actorID]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	if _, ok := m.users[targetID]; !ok {
		return nil, apperr.NotFound("user not found")
	}
	if m.follows[actorID] == nil {
		m.follows[actorID] = map[string]bool{}
	}
	m.follows[actorID][targetID] = true
	return &actor, nil
}

func (m *mockSocialStore) Unfollow(ctx context.Context, actorID, targetID string) (*graph.User, error) {
	actor, ok := m.users[actorID]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	delete(m.follows[actorID], targetID)
	return &actor, nil
}

func (m *mockSocialStore) Following(ctx context.Context, actorID string, limit int) ([]graph.User, error) {
	if _, ok := m.users[actorID]; !ok {
		return nil, apperr.NotFound("user not found")
	}
	out := []graph.User{}
	for id := range m.follows[actorID] {
		if len(out) >= limit {
			break
		}
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *mockSocialStore) NotFollowedBy(ctx context.Context, actorID string, limit int) ([]graph.User, error) {
	out := []graph.User{}
	for id, u := range m.users {
		if id == actorID || m.follows[actorID][id] {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *mockSocialStore) SearchUsers(ctx context.Context, query string) ([]graph.User, error) {
	out := []graph.User{}
	for _, u := range m.users {
		if u.Name == query || u.Username == query {
			out = append(out, u)
		}
	}
	return out, nil
}

func testUser(id, username string) graph.User {
	return graph.User{
		ID:       id,
		Name:     "User " + id,
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Secret:   "blue",
	}
}

func TestFollowSelf(t *testing.T) {
	svc := NewService(newMockSocialStore(testUser("a", "alice")))

	_, err := svc.Follow(context.Background(), "a", "a")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for a self-follow, got %v", err)
	}
}

func TestFollowUnknownTarget(t *testing.T) {
	svc := NewService(newMockSocialStore(testUser("a", "alice")))

	_, err := svc.Follow(context.Background(), "a", "ghost")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for an unknown target, got %v", err)
	}
}

func TestFollowIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMockSocialStore(testUser("a", "alice"), testUser("b", "bob"))
	svc := NewService(store)

	for i := 0; i < 2; i++ {
		actor, err := svc.Follow(ctx, "a", "b")
		if err != nil {
			t.Fatalf("Follow failed: %v", err)
		}
		if actor.Password != "" || actor.Secret != "" {
			t.Error("expected the returned actor to be redacted")
		}
	}

	following, err := svc.Following(ctx, "a", 0)
	if err != nil {
		t.Fatalf("Following failed: %v", err)
	}
	if len(following) != 1 {
		t.Errorf("expected a single follow edge after repeated follows, got %d", len(following))
	}
}

func TestUnfollowIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMockSocialStore(testUser("a", "alice"), testUser("b", "bob"))
	svc := NewService(store)

	if _, err := svc.Follow(ctx, "a", "b"); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if _, err := svc.Unfollow(ctx, "a", "b"); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	// removing an absent edge is a no-op
	if _, err := svc.Unfollow(ctx, "a", "b"); err != nil {
		t.Fatalf("repeated Unfollow failed: %v", err)
	}

	following, err := svc.Following(ctx, "a", 0)
	if err != nil {
		t.Fatalf("Following failed: %v", err)
	}
	if len(following) != 0 {
		t.Errorf("expected no follow edges, got %d", len(following))
	}
}

func TestDiscoverPeople(t *testing.T) {
	ctx := context.Background()
	store := newMockSocialStore(testUser("a", "alice"), testUser("b", "bob"), testUser("c", "carol"))
	svc := NewService(store)

	if _, err := svc.Follow(ctx, "a", "b"); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	people, err := svc.DiscoverPeople(ctx, "a", 0)
	if err != nil {
		t.Fatalf("DiscoverPeople failed: %v", err)
	}
	if len(people) != 1 || people[0].ID != "c" {
		t.Errorf("expected only the unfollowed stranger, got %v", people)
	}

	if _, err := svc.DiscoverPeople(ctx, "ghost", 0); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for an unknown actor, got %v", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewService(newMockSocialStore(testUser("a", "alice")))

	users, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected an empty result for an empty query, got %d users", len(users))
	}
}

func TestGetByUsername(t *testing.T) {
	svc := NewService(newMockSocialStore(testUser("a", "alice")))

	user, err := svc.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if user.ID != "a" {
		t.Errorf("expected user a, got %q", user.ID)
	}
	if user.Password != "" || user.Secret != "" {
		t.Error("expected the profile to be redacted")
	}
}
