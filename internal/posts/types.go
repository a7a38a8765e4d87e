package posts

import (
	"context"
	"time"

	"linkup/internal/graph"
)

// Store is the post-store and directory access the feed assembler and
// engagement engine need.
type Store interface {
	CreatePost(ctx context.Context, p *graph.Post) error
	GetPost(ctx context.Context, id string) (*graph.Post, error)
	PostsByAuthors(ctx context.Context, authorIDs []string) ([]graph.Post, error)
	RecentPosts(ctx context.Context, limit int) ([]graph.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	UpdatePost(ctx context.Context, id, content string, image *graph.Image) error
	DeletePost(ctx context.Context, id string) error

	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AppendComment(ctx context.Context, postID string, c *graph.Comment) error
	GetComment(ctx context.Context, postID, commentID string) (*graph.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID string) error

	FollowingIDs(ctx context.Context, actorID string) ([]string, error)
	UsersByIDs(ctx context.Context, ids []string) ([]graph.User, error)
}

// Comment is a comment with its author hydrated to a redacted summary
type Comment struct {
	ID        string        `json:"_id"`
	Text      string        `json:"text"`
	PostedBy  graph.Summary `json:"postedBy"`
	CreatedAt time.Time     `json:"created"`
}

// Post is a post with its owner and comment authors hydrated to redacted
// summaries.
type Post struct {
	ID        string        `json:"_id"`
	Content   string        `json:"content"`
	Image     *graph.Image  `json:"image,omitempty"`
	PostedBy  graph.Summary `json:"postedBy"`
	Likes     []string      `json:"likes"`
	Comments  []Comment     `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
}
