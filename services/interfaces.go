package services

import (
	"note-store/database"
	"note-store/models"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Insert(note *models.Note) error
	Update(note models.Note) error
	Delete(position int) error
	DeleteByKey(key int64) error
	Clear() error
	Count() (int, error)
	CountWhere(cond database.Condition) (int, error)
	Get(key int64) (*models.Note, error)
	GetAt(position int) (*models.Note, error)
	QueryPageWhere(cond database.Condition, offset, limit int) ([]models.Note, error)
}

// Validator checks request structs before they reach the store
type Validator interface {
	Validate(i interface{}) error
}

var _ NoteRepository = (*database.NoteStore)(nil)
