package model

// Todo is the domain model for a todo entry.
// Identity is assigned by the remote collection; a zero ID means "not yet created".
type Todo struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
