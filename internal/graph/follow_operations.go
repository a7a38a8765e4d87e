package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperr "linkup/pkg/errors"
)

// ============================================================================
// Follow Edge Operations
// ============================================================================
//
// A follow is a single FOLLOWS relationship: the actor's following set and the
// target's followers set are the two directional views of the same edge, so
// both sides move in one atomic write.

// Follow records actor following target and returns the actor. MERGE makes the
// operation idempotent.
func (r *Repository) Follow(ctx context.Context, actorID, targetID string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $actorID})
		MATCH (b:User {id: $targetID})
		MERGE (a)-[:FOLLOWS]->(b)
		RETURN a AS u
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"actorID":  actorID,
		"targetID": targetID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to follow: %w", err)
		}
		return nil, apperr.NotFound("user not found")
	}

	return userFromRecord(result.Record(), "u"), nil
}

// Unfollow removes the follow edge from actor to target and returns the actor.
// Removing a non-existent edge is a no-op.
func (r *Repository) Unfollow(ctx context.Context, actorID, targetID string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $actorID})
		MATCH (b:User {id: $targetID})
		OPTIONAL MATCH (a)-[f:FOLLOWS]->(b)
		DELETE f
		RETURN a AS u
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"actorID":  actorID,
		"targetID": targetID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unfollow: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to unfollow: %w", err)
		}
		return nil, apperr.NotFound("user not found")
	}

	return userFromRecord(result.Record(), "u"), nil
}

// Following returns up to limit full user records the actor follows, in
// directory default order.
func (r *Repository) Following(ctx context.Context, actorID string, limit int) ([]User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $actorID})
		OPTIONAL MATCH (a)-[:FOLLOWS]->(u:User)
		RETURN u
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"actorID": actorID,
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	users := []User{}
	found := false
	for result.Next(ctx) {
		found = true
		if u := userFromRecord(result.Record(), "u"); u != nil {
			users = append(users, *u)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("user not found")
	}

	return users, nil
}

// FollowingIDs returns the identities the actor follows
func (r *Repository) FollowingIDs(ctx context.Context, actorID string) ([]string, error) {
	return r.edgeIDs(ctx, actorID, `
		MATCH (a:User {id: $actorID})
		OPTIONAL MATCH (a)-[:FOLLOWS]->(u:User)
		RETURN collect(u.id) AS ids
	`)
}

// FollowerIDs returns the identities following the actor
func (r *Repository) FollowerIDs(ctx context.Context, actorID string) ([]string, error) {
	return r.edgeIDs(ctx, actorID, `
		MATCH (a:User {id: $actorID})
		OPTIONAL MATCH (u:User)-[:FOLLOWS]->(a)
		RETURN collect(u.id) AS ids
	`)
}

func (r *Repository) edgeIDs(ctx context.Context, actorID, query string) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]interface{}{"actorID": actorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to list follow edges: %w", err)
		}
		return nil, apperr.NotFound("user not found")
	}

	return getStringSliceFromRecord(result.Record(), "ids"), nil
}

// NotFollowedBy returns up to limit users excluding the actor and everyone the
// actor already follows.
func (r *Repository) NotFollowedBy(ctx context.Context, actorID string, limit int) ([]User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $actorID})
		MATCH (u:User)
		WHERE u.id <> a.id AND NOT (a)-[:FOLLOWS]->(u)
		RETURN u
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"actorID": actorID,
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find people: %w", err)
	}

	users := []User{}
	for result.Next(ctx) {
		if u := userFromRecord(result.Record(), "u"); u != nil {
			users = append(users, *u)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to find people: %w", err)
	}

	return users, nil
}
