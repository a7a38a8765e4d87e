package posts

import (
	"context"
	"sort"

	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
)

// fakeStore is an in-memory Store shared by the feed and engagement tests

type fakeStore struct {
	users   map[string]graph.User
	follows map[string][]string
	posts   map[string]*graph.Post
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]graph.User{},
		follows: map[string][]string{},
		posts:   map[string]*graph.Post{},
	}
}

func (f *fakeStore) addUser(u graph.User) {
	f.users[u.ID] = u
}

func (f *fakeStore) addFollow(actorID, targetID string) {
	f.follows[actorID] = append(f.follows[actorID], targetID)
}

func (f *fakeStore) CreatePost(ctx context.Context, p *graph.Post) error {
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetPost(ctx context.Context, id string) (*graph.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperr.NotFound("post not found")
	}
	cp := *p
	cp.Likes = append([]string{}, p.Likes...)
	cp.Comments = append([]graph.Comment{}, p.Comments...)
	return &cp, nil
}

func (f *fakeStore) PostsByAuthors(ctx context.Context, authorIDs []string) ([]graph.Post, error) {
	authors := map[string]bool{}
	for _, id := range authorIDs {
		authors[id] = true
	}
	out := []graph.Post{}
	for _, p := range f.posts {
		if authors[p.PostedBy] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) RecentPosts(ctx context.Context, limit int) ([]graph.Post, error) {
	out := []graph.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CountPosts(ctx context.Context) (int64, error) {
	return int64(len(f.posts)), nil
}

func (f *fakeStore) UpdatePost(ctx context.Context, id, content string, image *graph.Image) error {
	p, ok := f.posts[id]
	if !ok {
		return apperr.NotFound("post not found")
	}
	p.Content = content
	p.Image = image
	return nil
}

func (f *fakeStore) DeletePost(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return apperr.NotFound("post not found")
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) AddLike(ctx context.Context, postID, userID string) error {
	p, ok := f.posts[postID]
	if !ok {
		return apperr.NotFound("post not found")
	}
	for _, id := range p.Likes {
		if id == userID {
			return nil
		}
	}
	p.Likes = append(p.Likes, userID)
	return nil
}

func (f *fakeStore) RemoveLike(ctx context.Context, postID, userID string) error {
	p, ok := f.posts[postID]
	if !ok {
		return apperr.NotFound("post not found")
	}
	kept := p.Likes[:0]
	for _, id := range p.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	p.Likes = kept
	return nil
}

func (f *fakeStore) AppendComment(ctx context.Context, postID string, c *graph.Comment) error {
	p, ok := f.posts[postID]
	if !ok {
		return apperr.NotFound("post not found")
	}
	p.Comments = append(p.Comments, *c)
	return nil
}

func (f *fakeStore) GetComment(ctx context.Context, postID, commentID string) (*graph.Comment, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, apperr.NotFound("post not found")
	}
	for _, c := range p.Comments {
		if c.ID == commentID {
			comment := c
			return &comment, nil
		}
	}
	return nil, apperr.NotFound("comment not found")
}

func (f *fakeStore) RemoveComment(ctx context.Context, postID, commentID string) error {
	p, ok := f.posts[postID]
	if !ok {
		return apperr.NotFound("post not found")
	}
	kept := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	p.Comments = kept
	return nil
}

func (f *fakeStore) FollowingIDs(ctx context.Context, actorID string) ([]string, error) {
	return append([]string{}, f.follows[actorID]...), nil
}

func (f *fakeStore) UsersByIDs(ctx context.Context, ids []string) ([]graph.User, error) {
	out := []graph.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
