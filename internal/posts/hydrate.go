package posts

import (
	"context"

	"linkup/internal/graph"
)

// hydratePosts resolves every owner and comment-author identity referenced by
// raw into redacted user summaries, with a single directory lookup for the
// whole batch.
func hydratePosts(ctx context.Context, store Store, raw []graph.Post) ([]Post, error) {
	idSet := map[string]bool{}
	for _, p := range raw {
		idSet[p.PostedBy] = true
		for _, c := range p.Comments {
			idSet[c.PostedBy] = true
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries := map[string]graph.Summary{}
	if len(ids) > 0 {
		users, err := store.UsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range users {
			summaries[users[i].ID] = users[i].Summary()
		}
	}

	hydrated := make([]Post, 0, len(raw))
	for _, p := range raw {
		comments := make([]Comment, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, Comment{
				ID:        c.ID,
				Text:      c.Text,
				PostedBy:  summaries[c.PostedBy],
				CreatedAt: c.CreatedAt,
			})
		}
		hydrated = append(hydrated, Post{
			ID:        p.ID,
			Content:   p.Content,
			Image:     p.Image,
			PostedBy:  summaries[p.PostedBy],
			Likes:     p.Likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
		})
	}

	return hydrated, nil
}

func hydratePost(ctx context.Context, store Store, raw *graph.Post) (*Post, error) {
	hydrated, err := hydratePosts(ctx, store, []graph.Post{*raw})
	if err != nil {
		return nil, err
	}
	return &hydrated[0], nil
}
