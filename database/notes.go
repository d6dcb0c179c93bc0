package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"note-store/models"
)

const (
	noteColumns    = "_id, title, content, date"
	defaultOrderBy = "date DESC, _id DESC"
)

// NoteStore owns the database connection and the note table.
// It does no locking; callers serialise access.
type NoteStore struct {
	db     *DB
	logger *slog.Logger
}

func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db, logger: db.logger}
}

// Close releases the connection. The store is unusable afterwards.
func (s *NoteStore) Close() error {
	return s.db.Close()
}

// ==================== MUTATIONS ====================

// Insert stores note and sets note.Key to the assigned identifier.
// On failure note.Key is left unchanged.
func (s *NoteStore) Insert(note *models.Note) error {
	if note == nil {
		return fmt.Errorf("%w: nil note", ErrConstraint)
	}

	res, err := s.db.Exec(`
		INSERT INTO note (title, content, date)
		VALUES (?, ?, ?)
	`, note.Title, note.Content, note.Date)
	if err != nil {
		s.logger.Error("db insert failed", "error", err)
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}

	key, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: failed to read inserted key: %w", ErrConstraint, err)
	}

	note.Key = key
	return nil
}

// Update overwrites title, content and date of the row identified by note.Key
func (s *NoteStore) Update(note models.Note) error {
	if !note.Persisted() {
		return fmt.Errorf("%w: note has not been inserted", ErrNotFound)
	}

	res, err := s.db.Exec(`
		UPDATE note SET
			title = ?,
			content = ?,
			date = ?
		WHERE _id = ?
	`, note.Title, note.Content, note.Date, note.Key)
	if err != nil {
		s.logger.Error("db update failed", "key", note.Key, "error", err)
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}

	if err := expectAffected(res); err != nil {
		s.logger.Debug("db update matched no rows", "key", note.Key)
		return fmt.Errorf("update key %d: %w", note.Key, err)
	}
	return nil
}

// Delete removes the row at position under the default ordering
func (s *NoteStore) Delete(position int) error {
	if position < 0 {
		return fmt.Errorf("%w: position %d", ErrNotFound, position)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	defer tx.Rollback()

	key, err := keyAt(tx, position, Condition{})
	if err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM note WHERE _id = ?", key)
	if err != nil {
		s.logger.Error("db delete failed", "key", key, "error", err)
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("delete position %d: %w", position, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return nil
}

// DeleteByKey removes the row with the given identifier
func (s *NoteStore) DeleteByKey(key int64) error {
	res, err := s.db.Exec("DELETE FROM note WHERE _id = ?", key)
	if err != nil {
		s.logger.Error("db delete failed", "key", key, "error", err)
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	if err := expectAffected(res); err != nil {
		return fmt.Errorf("delete key %d: %w", key, err)
	}
	return nil
}

// Clear deletes every row. The table itself is kept.
func (s *NoteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM note"); err != nil {
		s.logger.Error("db clear failed", "error", err)
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return nil
}

// ==================== READS ====================

func (s *NoteStore) Count() (int, error) {
	return s.CountWhere(Condition{})
}

func (s *NoteStore) CountWhere(cond Condition) (int, error) {
	where, args := cond.where()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM note"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}

// Get returns the note with the given key, or nil if there is none
func (s *NoteStore) Get(key int64) (*models.Note, error) {
	return s.first(Where("_id = ?", key), 0)
}

// GetAt returns the note at position under the default ordering, or nil
// if position is out of range
func (s *NoteStore) GetAt(position int) (*models.Note, error) {
	return s.GetAtWhere(position, Condition{})
}

// GetAtWhere is GetAt restricted to rows matching cond
func (s *NoteStore) GetAtWhere(position int, cond Condition) (*models.Note, error) {
	if position < 0 {
		return nil, nil
	}
	return s.first(cond, position)
}

func (s *NoteStore) Query() ([]models.Note, error) {
	return s.QueryPageWhere(Condition{}, 0, 0)
}

func (s *NoteStore) QueryWhere(cond Condition) ([]models.Note, error) {
	return s.QueryPageWhere(cond, 0, 0)
}

func (s *NoteStore) QueryPage(offset, limit int) ([]models.Note, error) {
	return s.QueryPageWhere(Condition{}, offset, limit)
}

// QueryPageWhere returns up to limit matching notes starting at offset.
// A limit of zero or less means no limit.
func (s *NoteStore) QueryPageWhere(cond Condition, offset, limit int) ([]models.Note, error) {
	if offset < 0 {
		offset = 0
	}
	return s.selectNotes(cond, offset, limit)
}

func (s *NoteStore) first(cond Condition, offset int) (*models.Note, error) {
	notes, err := s.selectNotes(cond, offset, 1)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}

func (s *NoteStore) selectNotes(cond Condition, offset, limit int) ([]models.Note, error) {
	where, args := cond.where()
	query := "SELECT " + noteColumns + " FROM note" + where + " ORDER BY " + defaultOrderBy

	switch {
	case limit > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	case offset > 0:
		query += " LIMIT -1 OFFSET ?"
		args = append(args, offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// ==================== HELPERS ====================

type rowQueryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

// keyAt resolves a position under the default ordering to a row key
func keyAt(q rowQueryer, position int, cond Condition) (int64, error) {
	where, args := cond.where()
	args = append(args, position)

	var key int64
	err := q.QueryRow(
		"SELECT _id FROM note"+where+" ORDER BY "+defaultOrderBy+" LIMIT 1 OFFSET ?",
		args...,
	).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: position %d", ErrNotFound, position)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve position %d: %w", position, err)
	}
	return key, nil
}

func scanNote(rows *sql.Rows) (models.Note, error) {
	var note models.Note
	var date sql.NullInt64
	if err := rows.Scan(&note.Key, &note.Title, &note.Content, &date); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrSchemaInconsistency, err)
	}
	note.Date = date.Int64
	return note, nil
}

func expectAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
