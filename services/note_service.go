package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"note-store/database"
	"note-store/models"
)

const (
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// Page is one window of the date-ordered note list
type Page struct {
	Notes  []models.Note `json:"notes"`
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// NoteService handles business logic for notes. The store has no locking
// of its own, so every call into it goes through mu.
type NoteService struct {
	mu        sync.Mutex
	repo      NoteRepository
	validator Validator
	now       func() int64
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, validator Validator) *NoteService {
	return &NoteService{
		repo:      repo,
		validator: validator,
		now:       models.NowMillis,
	}
}

// Create validates and inserts a new note. A zero date means now.
func (ns *NoteService) Create(req models.CreateNoteRequest) (*models.Note, error) {
	if err := ns.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	date := req.Date
	if date == 0 {
		date = ns.now()
	}
	note := models.NewNote(req.Title, req.Content, date)

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if err := ns.repo.Insert(&note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Update overwrites an existing note. A zero date keeps the stored one.
func (ns *NoteService) Update(key int64, req models.UpdateNoteRequest) (*models.Note, error) {
	if err := ns.validator.Validate(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	note, err := ns.repo.Get(key)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	note.Title = req.Title
	note.Content = req.Content
	if req.Date != 0 {
		note.Date = req.Date
	}

	if err := ns.repo.Update(*note); err != nil {
		return nil, translate(err)
	}
	return note, nil
}

// Get retrieves a note by key
func (ns *NoteService) Get(key int64) (*models.Note, error) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	note, err := ns.repo.Get(key)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// GetAt retrieves the note at a position in the date-ordered list
func (ns *NoteService) GetAt(position int) (*models.Note, error) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	note, err := ns.repo.GetAt(position)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (ns *NoteService) Count() (int, error) {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	return ns.repo.Count()
}

// List returns a page of all notes, newest first
func (ns *NoteService) List(offset, limit int) (*Page, error) {
	return ns.page(database.Condition{}, offset, limit)
}

// Search returns a page of notes whose title or content contains term
func (ns *NoteService) Search(term string, offset, limit int) (*Page, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return ns.List(offset, limit)
	}
	return ns.page(database.TextContains(term), offset, limit)
}

// DeleteAt removes the note at a position in the date-ordered list
func (ns *NoteService) DeleteAt(position int) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	return translate(ns.repo.Delete(position))
}

// Delete removes a note by key
func (ns *NoteService) Delete(key int64) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	return translate(ns.repo.DeleteByKey(key))
}

// Clear removes every note
func (ns *NoteService) Clear() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	return ns.repo.Clear()
}

func (ns *NoteService) page(cond database.Condition, offset, limit int) (*Page, error) {
	// Validate and normalize pagination params
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	total, err := ns.repo.CountWhere(cond)
	if err != nil {
		return nil, err
	}

	notes, err := ns.repo.QueryPageWhere(cond, offset, limit)
	if err != nil {
		return nil, err
	}

	return &Page{
		Notes:  notes,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

func translate(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNoteNotFound, err)
	}
	return err
}
