package posts

import (
	"context"
	"testing"
	"time"

	"linkup/internal/graph"
)

func seedFeedStore() (*fakeStore, time.Time) {
	store := newFakeStore()
	store.addUser(graph.User{ID: "a", Name: "Alice", Username: "alice"})
	store.addUser(graph.User{ID: "b", Name: "Bob", Username: "bob"})
	store.addUser(graph.User{ID: "c", Name: "Carol", Username: "carol"})
	store.addFollow("a", "b")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return store, base
}

func addPost(store *fakeStore, id, author string, at time.Time) {
	store.posts[id] = &graph.Post{
		ID:        id,
		Content:   "post " + id,
		PostedBy:  author,
		CreatedAt: at,
	}
}

func TestAssembleFeedVisibilityAndOrder(t *testing.T) {
	store, base := seedFeedStore()
	// alice follows bob; carol is invisible to her
	addPost(store, "p1", "b", base)
	addPost(store, "p2", "a", base.Add(1*time.Minute))
	addPost(store, "p3", "c", base.Add(2*time.Minute))

	feed, err := NewAssembler(store).AssembleFeed(context.Background(), "a", 1)
	if err != nil {
		t.Fatalf("AssembleFeed failed: %v", err)
	}

	if len(feed) != 2 {
		t.Fatalf("expected 2 visible posts, got %d", len(feed))
	}
	if feed[0].ID != "p2" || feed[1].ID != "p1" {
		t.Errorf("expected newest-first order [p2 p1], got [%s %s]", feed[0].ID, feed[1].ID)
	}
	for _, p := range feed {
		if p.ID == "p3" {
			t.Error("posts by unfollowed authors must not appear in the feed")
		}
	}
}

func TestAssembleFeedPagination(t *testing.T) {
	store, base := seedFeedStore()
	// four visible posts, page size three
	addPost(store, "p1", "a", base)
	addPost(store, "p2", "b", base.Add(1*time.Minute))
	addPost(store, "p3", "a", base.Add(2*time.Minute))
	addPost(store, "p4", "b", base.Add(3*time.Minute))

	assembler := NewAssembler(store)
	ctx := context.Background()

	page1, err := assembler.AssembleFeed(ctx, "a", 1)
	if err != nil {
		t.Fatalf("AssembleFeed page 1 failed: %v", err)
	}
	if len(page1) != FeedPageSize {
		t.Fatalf("expected a full first page of %d, got %d", FeedPageSize, len(page1))
	}
	if page1[0].ID != "p4" || page1[2].ID != "p2" {
		t.Errorf("unexpected first page order: [%s %s %s]", page1[0].ID, page1[1].ID, page1[2].ID)
	}

	page2, err := assembler.AssembleFeed(ctx, "a", 2)
	if err != nil {
		t.Fatalf("AssembleFeed page 2 failed: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != "p1" {
		t.Errorf("expected the last page to hold only p1, got %v", page2)
	}

	// past the end is empty, not an error
	page3, err := assembler.AssembleFeed(ctx, "a", 3)
	if err != nil {
		t.Fatalf("AssembleFeed page 3 failed: %v", err)
	}
	if len(page3) != 0 {
		t.Errorf("expected an empty page past the end, got %d posts", len(page3))
	}

	// page values below one mean the first page
	pageZero, err := assembler.AssembleFeed(ctx, "a", 0)
	if err != nil {
		t.Fatalf("AssembleFeed page 0 failed: %v", err)
	}
	if len(pageZero) != len(page1) || pageZero[0].ID != page1[0].ID {
		t.Error("expected page 0 to equal page 1")
	}
}

func TestAssembleFeedHydration(t *testing.T) {
	store, base := seedFeedStore()
	addPost(store, "p1", "b", base)
	store.posts["p1"].Comments = []graph.Comment{
		{ID: "c1", Text: "nice", PostedBy: "c", CreatedAt: base.Add(time.Minute)},
	}

	feed, err := NewAssembler(store).AssembleFeed(context.Background(), "a", 1)
	if err != nil {
		t.Fatalf("AssembleFeed failed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected 1 post, got %d", len(feed))
	}

	post := feed[0]
	if post.PostedBy.ID != "b" || post.PostedBy.Name != "Bob" {
		t.Errorf("expected the owner hydrated to Bob's summary, got %+v", post.PostedBy)
	}
	if len(post.Comments) != 1 || post.Comments[0].PostedBy.Name != "Carol" {
		t.Errorf("expected the comment author hydrated to Carol's summary, got %+v", post.Comments)
	}
}

func TestRecentPosts(t *testing.T) {
	store, base := seedFeedStore()
	addPost(store, "p1", "a", base)
	addPost(store, "p2", "c", base.Add(1*time.Minute))
	addPost(store, "p3", "b", base.Add(2*time.Minute))

	// the global listing ignores the follow graph
	list, err := NewAssembler(store).RecentPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentPosts failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected the limit to cap the listing at 2, got %d", len(list))
	}
	if list[0].ID != "p3" || list[1].ID != "p2" {
		t.Errorf("expected newest-first order [p3 p2], got [%s %s]", list[0].ID, list[1].ID)
	}
}

func TestTotalPosts(t *testing.T) {
	store, base := seedFeedStore()
	addPost(store, "p1", "a", base)
	addPost(store, "p2", "b", base)

	total, err := NewAssembler(store).TotalPosts(context.Background())
	if err != nil {
		t.Fatalf("TotalPosts failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 posts, got %d", total)
	}
}
