package notes

import "time"

type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payload carries the client-writable fields of a note. Owner and id
// deliberately have no place here: they are never accepted from input.
type Payload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Filter narrows a note list. Both fields apply conjunctively.
type Filter struct {
	Tag    string
	Search string
}
