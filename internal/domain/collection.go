package domain

// Like references a post the user liked.
type Like struct {
	ID     int64
	PostID string
}

// Bookmark references a post the user bookmarked.
type Bookmark struct {
	ID     int64
	PostID string
}

// ListMembership places a post in a user-defined list.
type ListMembership struct {
	ListName string
	PostID   string
}
