package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperr "linkup/pkg/errors"
)

// ============================================================================
// Post Operations
// ============================================================================

// postReturn collects a post's likes and comments alongside the node. The
// intermediate WITH clauses keep the two optional matches from multiplying
// each other's rows.
const postReturn = `
	WITH p, author
	OPTIONAL MATCH (liker:User)-[:LIKES]->(p)
	WITH p, author, collect(DISTINCT liker.id) AS likes
	OPTIONAL MATCH (p)-[:HAS_COMMENT]->(c:Comment)<-[:WROTE]-(cu:User)
	WITH p, author, likes, collect(DISTINCT {
		id: c.id,
		text: c.text,
		posted_by: cu.id,
		created_at: c.created_at
	}) AS comments
	RETURN p AS post, author.id AS posted_by, likes, comments
`

// CreatePost creates a post node owned by its author
func (r *Repository) CreatePost(ctx context.Context, p *Post) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	imageURL, imagePublicID := imageParams(p.Image)
	now := p.CreatedAt.UTC().Format(time.RFC3339)

	query := `
		MATCH (u:User {id: $authorID})
		CREATE (p:Post {
			id: $id,
			content: $content,
			image_url: $imageURL,
			image_public_id: $imagePublicID,
			created_at: datetime($now)
		})
		CREATE (u)-[:POSTED]->(p)
		RETURN p.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"authorID":      p.PostedBy,
		"id":            p.ID,
		"content":       p.Content,
		"imageURL":      imageURL,
		"imagePublicID": imagePublicID,
		"now":           now,
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		return apperr.NotFound("user not found")
	}

	return nil
}

// GetPost retrieves a single post with its likes and comments
func (r *Repository) GetPost(ctx context.Context, id string) (*Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `MATCH (author:User)-[:POSTED]->(p:Post {id: $id})` + postReturn

	result, err := session.Run(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch post: %w", err)
		}
		return nil, apperr.NotFound("post not found")
	}

	return postFromRecord(result.Record()), nil
}

// PostsByAuthors retrieves all posts owned by the given identities, newest
// first.
func (r *Repository) PostsByAuthors(ctx context.Context, authorIDs []string) ([]Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (author:User)-[:POSTED]->(p:Post)
		WHERE author.id IN $authorIDs` + postReturn + `
		ORDER BY p.created_at DESC
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"authorIDs": authorIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	return r.collectPosts(ctx, result)
}

// RecentPosts retrieves the globally newest posts
func (r *Repository) RecentPosts(ctx context.Context, limit int) ([]Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (author:User)-[:POSTED]->(p:Post)` + postReturn + `
		ORDER BY p.created_at DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	return r.collectPosts(ctx, result)
}

func (r *Repository) collectPosts(ctx context.Context, result neo4j.ResultWithContext) ([]Post, error) {
	posts := []Post{}
	for result.Next(ctx) {
		if p := postFromRecord(result.Record()); p != nil {
			posts = append(posts, *p)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return posts, nil
}

// CountPosts returns the total number of posts
func (r *Repository) CountPosts(ctx context.Context) (int64, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, "MATCH (p:Post) RETURN count(p) AS total", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return getInt64FromRecord(record, "total"), nil
}

// UpdatePost replaces a post's content and image reference
func (r *Repository) UpdatePost(ctx context.Context, id, content string, image *Image) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	imageURL, imagePublicID := imageParams(image)

	query := `
		MATCH (p:Post {id: $id})
		SET p.content = $content,
		    p.image_url = $imageURL,
		    p.image_public_id = $imagePublicID
		RETURN p.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":            id,
		"content":       content,
		"imageURL":      imageURL,
		"imagePublicID": imagePublicID,
	})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		return apperr.NotFound("post not found")
	}

	return nil
}

// DeletePost removes a post and its comments
func (r *Repository) DeletePost(ctx context.Context, id string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $id})
		OPTIONAL MATCH (p)-[:HAS_COMMENT]->(c:Comment)
		DETACH DELETE p, c
	`

	if _, err := session.Run(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// ============================================================================
// Engagement Operations
// ============================================================================

// AddLike records that the user likes the post. MERGE keeps the like set free
// of duplicates.
func (r *Repository) AddLike(ctx context.Context, postID, userID string) error {
	return r.likeOp(ctx, postID, userID, `
		MATCH (p:Post {id: $postID})
		MATCH (u:User {id: $userID})
		MERGE (u)-[:LIKES]->(p)
		RETURN p.id AS id
	`)
}

// RemoveLike removes the user's like from the post; removing a non-member is
// a no-op.
func (r *Repository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.likeOp(ctx, postID, userID, `
		MATCH (p:Post {id: $postID})
		MATCH (u:User {id: $userID})
		OPTIONAL MATCH (u)-[l:LIKES]->(p)
		DELETE l
		RETURN p.id AS id
	`)
}

func (r *Repository) likeOp(ctx context.Context, postID, userID, query string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID": postID,
		"userID": userID,
	})
	if err != nil {
		return fmt.Errorf("failed to update likes: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to update likes: %w", err)
		}
		return apperr.NotFound("post not found")
	}

	return nil
}

// AppendComment attaches a new comment to the post
func (r *Repository) AppendComment(ctx context.Context, postID string, c *Comment) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	now := c.CreatedAt.UTC().Format(time.RFC3339)

	query := `
		MATCH (p:Post {id: $postID})
		MATCH (u:User {id: $authorID})
		CREATE (cm:Comment {id: $id, text: $text, created_at: datetime($now)})
		CREATE (p)-[:HAS_COMMENT]->(cm)
		CREATE (u)-[:WROTE]->(cm)
		RETURN cm.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID":   postID,
		"authorID": c.PostedBy,
		"id":       c.ID,
		"text":     c.Text,
		"now":      now,
	})
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		return apperr.NotFound("post not found")
	}

	return nil
}

// GetComment retrieves a single comment on the given post
func (r *Repository) GetComment(ctx context.Context, postID, commentID string) (*Comment, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})-[:HAS_COMMENT]->(c:Comment {id: $commentID})<-[:WROTE]-(u:User)
		RETURN c.id AS id, c.text AS text, u.id AS posted_by, c.created_at AS created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID":    postID,
		"commentID": commentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch comment: %w", err)
		}
		return nil, apperr.NotFound("comment not found")
	}

	record := result.Record()
	comment := &Comment{}
	if v, ok := record.Get("id"); ok {
		comment.ID, _ = v.(string)
	}
	if v, ok := record.Get("text"); ok {
		comment.Text, _ = v.(string)
	}
	if v, ok := record.Get("posted_by"); ok {
		comment.PostedBy, _ = v.(string)
	}
	if v, ok := record.Get("created_at"); ok {
		if t, ok := v.(time.Time); ok {
			comment.CreatedAt = t
		}
	}

	return comment, nil
}

// RemoveComment detaches and deletes a comment by identity; removing an
// absent comment is a no-op.
func (r *Repository) RemoveComment(ctx context.Context, postID, commentID string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})-[:HAS_COMMENT]->(c:Comment {id: $commentID})
		DETACH DELETE c
	`

	if _, err := session.Run(ctx, query, map[string]interface{}{
		"postID":    postID,
		"commentID": commentID,
	}); err != nil {
		return fmt.Errorf("failed to remove comment: %w", err)
	}

	return nil
}
