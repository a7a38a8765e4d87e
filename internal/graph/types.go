package graph

import "time"

// Image is a reference to an externally stored image: the public URL plus the
// storage identifier needed to release it later.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// User represents a user node. Password holds the bcrypt hash and Secret the
// recovery answer; neither ever serializes to JSON.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	Secret    string    `json:"-"`
	About     string    `json:"about,omitempty"`
	Image     *Image    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Redact clears the credential hash and recovery secret before the record
// leaves the core.
func (u *User) Redact() *User {
	u.Password = ""
	u.Secret = ""
	return u
}

// Summary is the redacted user representation used when hydrating posts and
// comments.
type Summary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image *Image `json:"image,omitempty"`
}

// Summary returns the redacted summary of u.
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Image: u.Image}
}

// Comment represents a comment node, ordered by CreatedAt within its post.
type Comment struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	PostedBy  string    `json:"postedBy"`
	CreatedAt time.Time `json:"created"`
}

// Post represents a post node with its collected engagement data. PostedBy and
// the comment authors are bare identities; hydration into summaries happens in
// the posts package.
type Post struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Image     *Image    `json:"image,omitempty"`
	PostedBy  string    `json:"postedBy"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}
