package posts

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"linkup/pkg/logger"
)

const (
	// FeedPageSize is the number of posts per news-feed page
	FeedPageSize = 3
	// DefaultRecentLimit caps the global recent-posts listing
	DefaultRecentLimit = 10
)

// Assembler builds the personalized news feed from the follow graph and the
// chronological post store.
type Assembler struct {
	store  Store
	logger *zap.Logger
}

// NewAssembler creates a feed assembler
func NewAssembler(store Store) *Assembler {
	return &Assembler{
		store:  store,
		logger: logger.Get(),
	}
}

// AssembleFeed returns one page of the user's feed: posts by followees and the
// user itself, newest first, hydrated. Pages beyond the end are empty, not an
// error; page values below 1 mean the first page.
func (a *Assembler) AssembleFeed(ctx context.Context, userID string, page int) ([]Post, error) {
	following, err := a.store.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	// the visibility set includes the user's own posts
	visible := append(following, userID)

	raw, err := a.store.PostsByAuthors(ctx, visible)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].CreatedAt.After(raw[j].CreatedAt)
	})

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * FeedPageSize
	if offset >= len(raw) {
		return []Post{}, nil
	}
	end := offset + FeedPageSize
	if end > len(raw) {
		end = len(raw)
	}

	return hydratePosts(ctx, a.store, raw[offset:end])
}

// RecentPosts returns the globally newest posts regardless of the follow
// graph, hydrated.
func (a *Assembler) RecentPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	raw, err := a.store.RecentPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return hydratePosts(ctx, a.store, raw)
}

// GetPost returns a single hydrated post
func (a *Assembler) GetPost(ctx context.Context, id string) (*Post, error) {
	raw, err := a.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return hydratePost(ctx, a.store, raw)
}

// TotalPosts returns the global post count
func (a *Assembler) TotalPosts(ctx context.Context) (int64, error) {
	return a.store.CountPosts(ctx)
}
