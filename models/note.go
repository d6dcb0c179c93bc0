package models

import "time"

// UnsavedKey marks a note that has not been inserted yet
const UnsavedKey int64 = -1

type Note struct {
	Key     int64  `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    int64  `json:"date"`
}

// NewNote returns an unsaved note
func NewNote(title, content string, date int64) Note {
	return Note{
		Key:     UnsavedKey,
		Title:   title,
		Content: content,
		Date:    date,
	}
}

// Persisted reports whether the note has an engine-assigned key
func (n Note) Persisted() bool {
	return n.Key != UnsavedKey
}

// NowMillis returns the current time in the unit used by Note.Date
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=200,notetitle"`
	Content string `json:"content" validate:"max=100000"`
	Date    int64  `json:"date" validate:"gte=0"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=200,notetitle"`
	Content string `json:"content" validate:"max=100000"`
	Date    int64  `json:"date" validate:"gte=0"`
}
