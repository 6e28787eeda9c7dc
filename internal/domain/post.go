package domain

// Post is one archived unit of content.
type Post struct {
	ID              string // Post ID from the source platform
	AccountUsername string // Author of the post
	Text            string // Post text, empty when absent
}
