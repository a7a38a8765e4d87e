package social

import (
	"context"

	"go.uber.org/zap"

	"linkup/internal/graph"
	apperr "linkup/pkg/errors"
	"linkup/pkg/logger"
)

const (
	// DefaultFollowingLimit caps the following list
	DefaultFollowingLimit = 100
	// DefaultDiscoverLimit caps the people-you-may-follow query
	DefaultDiscoverLimit = 10
)

// Store is the directory access the social graph engine needs
type Store interface {
	GetUserByID(ctx context.Context, id string) (*graph.User, error)
	GetUserByUsername(ctx context.Context, username string) (*graph.User, error)
	Follow(ctx context.Context, actorID, targetID string) (*graph.User, error)
	Unfollow(ctx context.Context, actorID, targetID string) (*graph.User, error)
	Following(ctx context.Context, actorID string, limit int) ([]graph.User, error)
	NotFollowedBy(ctx context.Context, actorID string, limit int) ([]graph.User, error)
	SearchUsers(ctx context.Context, query string) ([]graph.User, error)
}

// Service computes follow effects and discovery queries over the follow graph
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a social graph service
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: logger.Get(),
	}
}

// Follow makes actor follow target. Idempotent; a user cannot follow itself.
func (s *Service) Follow(ctx context.Context, actorID, targetID string) (*graph.User, error) {
	if actorID == targetID {
		return nil, apperr.Validation("cannot follow yourself")
	}

	actor, err := s.store.Follow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Follow edge added",
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
	)
	return actor.Redact(), nil
}

// Unfollow removes the follow edge from actor to target. Idempotent.
func (s *Service) Unfollow(ctx context.Context, actorID, targetID string) (*graph.User, error) {
	actor, err := s.store.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Follow edge removed",
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
	)
	return actor.Redact(), nil
}

// Following lists up to limit users the actor follows
func (s *Service) Following(ctx context.Context, actorID string, limit int) ([]graph.User, error) {
	if limit <= 0 {
		limit = DefaultFollowingLimit
	}

	users, err := s.store.Following(ctx, actorID, limit)
	if err != nil {
		return nil, err
	}
	return redactAll(users), nil
}

// DiscoverPeople suggests users the actor does not follow yet, excluding the
// actor itself.
func (s *Service) DiscoverPeople(ctx context.Context, actorID string, limit int) ([]graph.User, error) {
	if limit <= 0 {
		limit = DefaultDiscoverLimit
	}

	if _, err := s.store.GetUserByID(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := s.store.NotFollowedBy(ctx, actorID, limit)
	if err != nil {
		return nil, err
	}
	return redactAll(users), nil
}

// Search matches users by display name or username, case-insensitive
// substring. An empty query returns no results.
func (s *Service) Search(ctx context.Context, query string) ([]graph.User, error) {
	if query == "" {
		return []graph.User{}, nil
	}

	users, err := s.store.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	return redactAll(users), nil
}

// GetByUsername returns the public profile for a handle
func (s *Service) GetByUsername(ctx context.Context, username string) (*graph.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Redact(), nil
}

func redactAll(users []graph.User) []graph.User {
	for i := range users {
		users[i].Redact()
	}
	return users
}
