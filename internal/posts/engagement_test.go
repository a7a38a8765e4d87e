package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
)

type fakeReleaser struct {
	released []string
	err      error
}

func (f *fakeReleaser) Release(ctx context.Context, publicID string) error {
	f.released = append(f.released, publicID)
	return f.err
}

func newEngagementStore() *fakeStore {
	store := newFakeStore()
	store.addUser(graph.User{ID: "a", Name: "Alice", Username: "alice"})
	store.addUser(graph.User{ID: "b", Name: "Bob", Username: "bob"})
	return store
}

func TestCreatePost(t *testing.T) {
	store := newEngagementStore()
	engage := NewEngagement(store, nil)

	post, err := engage.CreatePost(context.Background(), "a", "hello world", nil)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID == "" {
		t.Error("expected a generated post id")
	}
	if post.PostedBy.Name != "Alice" {
		t.Errorf("expected the owner hydrated, got %+v", post.PostedBy)
	}

	_, err = engage.CreatePost(context.Background(), "a", "", nil)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for empty content, got %v", err)
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	engage := NewEngagement(store, nil)

	post, err := engage.CreatePost(ctx, "a", "original", nil)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	_, err = engage.UpdatePost(ctx, post.ID, "b", "hijacked", nil)
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized for a non-owner edit, got %v", err)
	}

	updated, err := engage.UpdatePost(ctx, post.ID, "a", "edited", nil)
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("expected updated content, got %q", updated.Content)
	}
}

func TestLikeSetSemantics(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	engage := NewEngagement(store, nil)

	created, err := engage.CreatePost(ctx, "a", "likeable", nil)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// repeated likes collapse to one entry
	for i := 0; i < 3; i++ {
		post, err := engage.Like(ctx, created.ID, "b")
		if err != nil {
			t.Fatalf("Like failed: %v", err)
		}
		if len(post.Likes) != 1 || post.Likes[0] != "b" {
			t.Fatalf("expected the like set to hold exactly [b], got %v", post.Likes)
		}
	}

	post, err := engage.Unlike(ctx, created.ID, "b")
	if err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if len(post.Likes) != 0 {
		t.Errorf("expected an empty like set, got %v", post.Likes)
	}

	// unliking again is a no-op
	if _, err := engage.Unlike(ctx, created.ID, "b"); err != nil {
		t.Errorf("repeated Unlike failed: %v", err)
	}

	if _, err := engage.Like(ctx, "missing", "b"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found for a missing post, got %v", err)
	}
}

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	engage := NewEngagement(store, nil)

	created, err := engage.CreatePost(ctx, "a", "discuss", nil)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	post, err := engage.AddComment(ctx, created.ID, "b", "first!")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if len(post.Comments) != 1 {
		t.Fatalf("expected one comment, got %d", len(post.Comments))
	}
	comment := post.Comments[0]
	if comment.Text != "first!" || comment.PostedBy.Name != "Bob" {
		t.Errorf("unexpected hydrated comment: %+v", comment)
	}

	_, err = engage.AddComment(ctx, created.ID, "b", "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error for empty comment text, got %v", err)
	}

	updated, err := engage.RemoveComment(ctx, created.ID, comment.ID, "b")
	if err != nil {
		t.Fatalf("RemoveComment failed: %v", err)
	}
	if len(updated.Comments) != 0 {
		t.Errorf("expected the comment removed, got %v", updated.Comments)
	}
}

func TestRemoveCommentAuthorization(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	store.addUser(graph.User{ID: "c", Name: "Carol", Username: "carol"})
	engage := NewEngagement(store, nil)

	created, err := engage.CreatePost(ctx, "a", "discuss", nil)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	post, err := engage.AddComment(ctx, created.ID, "b", "hello")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	commentID := post.Comments[0].ID

	// a bystander can remove nothing
	_, err = engage.RemoveComment(ctx, created.ID, commentID, "c")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized for a bystander, got %v", err)
	}

	// the post owner may moderate comments by others
	updated, err := engage.RemoveComment(ctx, created.ID, commentID, "a")
	if err != nil {
		t.Fatalf("RemoveComment by post owner failed: %v", err)
	}
	if len(updated.Comments) != 0 {
		t.Errorf("expected the comment removed, got %v", updated.Comments)
	}
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	releaser := &fakeReleaser{}
	engage := NewEngagement(store, releaser)

	image := &graph.Image{URL: "https://img.example/x.png", PublicID: "img-1"}
	created, err := engage.CreatePost(ctx, "a", "with image", image)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := engage.DeletePost(ctx, created.ID, "b"); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized for a non-owner delete, got %v", err)
	}

	if err := engage.DeletePost(ctx, created.ID, "a"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := store.GetPost(ctx, created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Error("expected the post to be gone")
	}
	if len(releaser.released) != 1 || releaser.released[0] != "img-1" {
		t.Errorf("expected exactly one release of img-1, got %v", releaser.released)
	}
}

func TestDeletePostSurvivesReleaseFailure(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	releaser := &fakeReleaser{err: errors.New("bucket unreachable")}
	engage := NewEngagement(store, releaser)

	image := &graph.Image{URL: "https://img.example/x.png", PublicID: "img-1"}
	created, err := engage.CreatePost(ctx, "a", "with image", image)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if err := engage.DeletePost(ctx, created.ID, "a"); err != nil {
		t.Fatalf("expected deletion to stand despite a release failure, got %v", err)
	}
	if _, err := store.GetPost(ctx, created.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Error("expected the post to be gone")
	}
}

func TestCommentsKeepChronologicalOrder(t *testing.T) {
	ctx := context.Background()
	store := newEngagementStore()
	engage := NewEngagement(store, nil)

	created, err := engage.CreatePost(ctx, "a", "timeline", nil)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	var last *Post
	for _, text := range []string{"one", "two", "three"} {
		last, err = engage.AddComment(ctx, created.ID, "b", text)
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	if len(last.Comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(last.Comments))
	}
	for i, want := range []string{"one", "two", "three"} {
		if last.Comments[i].Text != want {
			t.Errorf("comment %d = %q, want %q", i, last.Comments[i].Text, want)
		}
	}
}
