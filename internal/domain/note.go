package domain

import "time"

// Note is the persisted entity. ID is assigned by the store at insertion and
// never changes; ModifiedAt is refreshed by the store on every write.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// UpdateNoteRequest carries the only two fields an update may touch.
// Timestamps and the id are owned by the store and cannot be set through it.
type UpdateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}
