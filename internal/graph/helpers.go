package graph

import (
	"sort"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// ============================================================================
// Record parsing helpers
// ============================================================================

func getStringFromMap(m map[string]interface{}, key, defaultValue string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

func getTimeFromMap(m map[string]interface{}, key string, defaultValue time.Time) time.Time {
	val, ok := m[key]
	if !ok || val == nil {
		return defaultValue
	}
	// Neo4j datetime values come back as time.Time
	if t, ok := val.(time.Time); ok {
		return t
	}
	return defaultValue
}

func getInt64FromRecord(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}

func getStringSliceFromRecord(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return []string{}
	}
	if slice, ok := val.([]interface{}); ok {
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}

// userFromValue builds a User from a returned node value. Returns nil for
// null values (e.g. an unmatched OPTIONAL MATCH).
func userFromValue(val interface{}) *User {
	node, ok := val.(dbtype.Node)
	if !ok {
		return nil
	}
	props := node.Props
	return &User{
		ID:        getStringFromMap(props, "id", ""),
		Name:      getStringFromMap(props, "name", ""),
		Username:  getStringFromMap(props, "username", ""),
		Email:     getStringFromMap(props, "email", ""),
		Password:  getStringFromMap(props, "password", ""),
		Secret:    getStringFromMap(props, "secret", ""),
		About:     getStringFromMap(props, "about", ""),
		Image:     imageFromProps(props),
		CreatedAt: getTimeFromMap(props, "created_at", time.Time{}),
	}
}

func userFromRecord(record *neo4j.Record, key string) *User {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	return userFromValue(val)
}

func imageFromProps(props map[string]interface{}) *Image {
	url := getStringFromMap(props, "image_url", "")
	publicID := getStringFromMap(props, "image_public_id", "")
	if url == "" && publicID == "" {
		return nil
	}
	return &Image{URL: url, PublicID: publicID}
}

// imageParams flattens an optional image reference into query parameters.
func imageParams(img *Image) (interface{}, interface{}) {
	if img == nil {
		return nil, nil
	}
	return img.URL, img.PublicID
}

// postFromRecord builds a Post from a record with the shape produced by
// postReturn: post node, posted_by, likes, comments.
func postFromRecord(record *neo4j.Record) *Post {
	val, ok := record.Get("post")
	if !ok || val == nil {
		return nil
	}
	node, ok := val.(dbtype.Node)
	if !ok {
		return nil
	}
	props := node.Props

	post := &Post{
		ID:        getStringFromMap(props, "id", ""),
		Content:   getStringFromMap(props, "content", ""),
		Image:     imageFromProps(props),
		CreatedAt: getTimeFromMap(props, "created_at", time.Time{}),
		Likes:     getStringSliceFromRecord(record, "likes"),
		Comments:  []Comment{},
	}

	if postedBy, ok := record.Get("posted_by"); ok {
		if id, ok := postedBy.(string); ok {
			post.PostedBy = id
		}
	}

	if comments, ok := record.Get("comments"); ok {
		if list, ok := comments.([]interface{}); ok {
			for _, c := range list {
				cm, ok := c.(map[string]interface{})
				if !ok {
					continue
				}
				id := getStringFromMap(cm, "id", "")
				if id == "" {
					// unmatched OPTIONAL MATCH leaves a null-valued entry
					continue
				}
				post.Comments = append(post.Comments, Comment{
					ID:        id,
					Text:      getStringFromMap(cm, "text", ""),
					PostedBy:  getStringFromMap(cm, "posted_by", ""),
					CreatedAt: getTimeFromMap(cm, "created_at", time.Time{}),
				})
			}
		}
	}

	// comments are ordered by append time within their post
	sort.Slice(post.Comments, func(i, j int) bool {
		return post.Comments[i].CreatedAt.Before(post.Comments[j].CreatedAt)
	})

	return post
}
