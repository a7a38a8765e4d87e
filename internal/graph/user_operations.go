package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	apperr "linkup/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// CreateUser creates a new user node. A uniqueness constraint violation on
// email or username maps to a conflict error.
func (r *Repository) CreateUser(ctx context.Context, u *User) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	imageURL, imagePublicID := imageParams(u.Image)
	now := u.CreatedAt.UTC().Format(time.RFC3339)

	query := `
		CREATE (u:User {
			id: $id,
			name: $name,
			username: $username,
			email: $email,
			password: $password,
			secret: $secret,
			about: $about,
			image_url: $imageURL,
			image_public_id: $imagePublicID,
			created_at: datetime($now)
		})
		RETURN u.id AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":            u.ID,
		"name":          u.Name,
		"username":      u.Username,
		"email":         u.Email,
		"password":      u.Password,
		"secret":        u.Secret,
		"about":         u.About,
		"imageURL":      imageURL,
		"imagePublicID": imagePublicID,
		"now":           now,
	})
	if err == nil {
		_, err = result.Single(ctx)
	}
	if err != nil {
		if isConstraintViolation(err) {
			return apperr.Conflict("email or username already in use")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by identity
func (r *Repository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.findUser(ctx, "MATCH (u:User {id: $value}) RETURN u", id)
}

// GetUserByEmail retrieves a user by unique email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.findUser(ctx, "MATCH (u:User {email: $value}) RETURN u", email)
}

// GetUserByUsername retrieves a user by unique username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.findUser(ctx, "MATCH (u:User {username: $value}) RETURN u", username)
}

func (r *Repository) findUser(ctx context.Context, query, value string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]interface{}{"value": value})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, apperr.NotFound("user not found")
	}

	return userFromRecord(result.Record(), "u"), nil
}

// GetUserByEmailAndSecret retrieves a user whose email and recovery secret
// both match, used for password recovery.
func (r *Repository) GetUserByEmailAndSecret(ctx context.Context, email, secret string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {email: $email, secret: $secret})
		RETURN u
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email":  email,
		"secret": secret,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, apperr.NotFound("we can't verify you with those details")
	}

	return userFromRecord(result.Record(), "u"), nil
}

// UpdateUser patches the given properties onto an existing user and returns
// the updated record. Allowed keys: name, username, about, password, secret,
// image_url, image_public_id.
func (r *Repository) UpdateUser(ctx context.Context, id string, props map[string]interface{}) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $id})
		SET u += $props
		RETURN u
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":    id,
		"props": props,
	})
	if err != nil {
		if isConstraintViolation(err) {
			return nil, apperr.Conflict("username already taken")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			if isConstraintViolation(err) {
				return nil, apperr.Conflict("username already taken")
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return nil, apperr.NotFound("user not found")
	}

	return userFromRecord(result.Record(), "u"), nil
}

// UsersByIDs retrieves the users whose identity is in ids, in directory
// default order. Missing identities are silently skipped.
func (r *Repository) UsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User)
		WHERE u.id IN $ids
		RETURN u
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	var users []User
	for result.Next(ctx) {
		if u := userFromRecord(result.Record(), "u"); u != nil {
			users = append(users, *u)
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}
