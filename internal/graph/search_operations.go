package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// SearchUsers performs a case-insensitive substring match against display
// name or username.
func (r *Repository) SearchUsers(ctx context.Context, query string) ([]User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	cypher := `
		MATCH (u:User)
		WHERE toLower(u.name) CONTAINS toLower($query)
		   OR toLower(u.username) CONTAINS toLower($query)
		RETURN u
	`

	result, err := session.Run(ctx, cypher, map[string]interface{}{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	users := []User{}
	for result.Next(ctx) {
		if u := userFromRecord(result.Record(), "u"); u != nil {
			users = append(users, *u)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}
