package posts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
	"linkup/pkg/logger"
)

// Releaser frees an externally stored image by its storage identifier
type Releaser interface {
	Release(ctx context.Context, publicID string) error
}

// Engagement applies post and comment mutations while preserving set and
// list invariants.
type Engagement struct {
	store    Store
	releaser Releaser
	logger   *zap.Logger
}

// NewEngagement creates an engagement engine. releaser may be nil when no
// object storage is configured.
func NewEngagement(store Store, releaser Releaser) *Engagement {
	return &Engagement{
		store:    store,
		releaser: releaser,
		logger:   logger.Get(),
	}
}

// CreatePost creates a post owned by author and returns it hydrated
func (e *Engagement) CreatePost(ctx context.Context, authorID, content string, image *graph.Image) (*Post, error) {
	if content == "" {
		return nil, apperr.Validation("content is required")
	}

	post := &graph.Post{
		ID:        uuid.NewString(),
		Content:   content,
		Image:     image,
		PostedBy:  authorID,
		CreatedAt: time.Now(),
	}
	if err := e.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	e.logger.Info("Post created",
		zap.String("post_id", post.ID),
		zap.String("author_id", authorID),
	)
	return hydratePost(ctx, e.store, post)
}

// UpdatePost replaces a post's content and image; only the owner may edit
func (e *Engagement) UpdatePost(ctx context.Context, postID, actorID, content string, image *graph.Image) (*Post, error) {
	if content == "" {
		return nil, apperr.Validation("content is required")
	}

	post, err := e.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.PostedBy != actorID {
		return nil, apperr.Unauthorized("only the owner can edit this post")
	}

	if err := e.store.UpdatePost(ctx, postID, content, image); err != nil {
		return nil, err
	}

	updated, err := e.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return hydratePost(ctx, e.store, updated)
}

// Like adds actor to the post's like set and returns the updated post.
// Repeated likes are no-ops.
func (e *Engagement) Like(ctx context.Context, postID, actorID string) (*graph.Post, error) {
	if err := e.store.AddLike(ctx, postID, actorID); err != nil {
		return nil, err
	}
	return e.store.GetPost(ctx, postID)
}

// Unlike removes actor from the post's like set and returns the updated post.
// Removing a non-member is a no-op.
func (e *Engagement) Unlike(ctx context.Context, postID, actorID string) (*graph.Post, error) {
	if err := e.store.RemoveLike(ctx, postID, actorID); err != nil {
		return nil, err
	}
	return e.store.GetPost(ctx, postID)
}

// AddComment appends a fresh comment and returns the post hydrated
func (e *Engagement) AddComment(ctx context.Context, postID, authorID, text string) (*Post, error) {
	if text == "" {
		return nil, apperr.Validation("comment text is required")
	}

	comment := &graph.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		PostedBy:  authorID,
		CreatedAt: time.Now(),
	}
	if err := e.store.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	post, err := e.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return hydratePost(ctx, e.store, post)
}

// RemoveComment removes a comment by identity. Only the comment's author or
// the post's owner may remove it.
func (e *Engagement) RemoveComment(ctx context.Context, postID, commentID, actorID string) (*graph.Post, error) {
	post, err := e.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := e.store.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostedBy != actorID && post.PostedBy != actorID {
		return nil, apperr.Unauthorized("only the comment author or post owner can remove this comment")
	}

	if err := e.store.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}

	return e.store.GetPost(ctx, postID)
}

// DeletePost removes a post owned by actor. An attached image is released
// from object storage best-effort: a release failure is logged and does not
// undo the deletion.
func (e *Engagement) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := e.store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.PostedBy != actorID {
		return apperr.Unauthorized("only the owner can delete this post")
	}

	if err := e.store.DeletePost(ctx, postID); err != nil {
		return err
	}

	if post.Image != nil && post.Image.PublicID != "" && e.releaser != nil {
		if err := e.releaser.Release(ctx, post.Image.PublicID); err != nil {
			e.logger.Warn("Failed to release post image",
				zap.String("post_id", postID),
				zap.String("public_id", post.Image.PublicID),
				zap.Error(err),
			)
		}
	}

	e.logger.Info("Post deleted", zap.String("post_id", postID))
	return nil
}
