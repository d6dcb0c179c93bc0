package database

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"note-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_CreatesSchema(t *testing.T) {
	for _, driver := range []string{DriverCGO, DriverPureGo} {
		t.Run(driver, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "nested", "notes.db")

			db, err := Open(Config{Path: dbPath, Driver: driver, Logger: quietLogger()})
			require.NoError(t, err)
			defer db.Close()

			_, err = os.Stat(dbPath)
			assert.NoError(t, err, "database file should exist")

			version, err := db.Version()
			require.NoError(t, err)
			assert.Equal(t, SchemaVersion, version)

			store := NewNoteStore(db)
			note := models.NewNote("hello", "world", 42)
			require.NoError(t, store.Insert(&note))

			got, err := store.Get(note.Key)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, note, *got)
		})
	}
}

func TestOpen_KeepsRowsWhenVersionMatches(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notes.db")

	db, err := Open(Config{Path: dbPath, Logger: quietLogger()})
	require.NoError(t, err)
	store := NewNoteStore(db)
	note := models.NewNote("keep", "me", 1)
	require.NoError(t, store.Insert(&note))
	require.NoError(t, store.Close())

	db, err = Open(Config{Path: dbPath, Logger: quietLogger()})
	require.NoError(t, err)
	store = NewNoteStore(db)
	defer store.Close()

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpen_VersionChangeRecreatesTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notes.db")

	db, err := Open(Config{Path: dbPath, Logger: quietLogger()})
	require.NoError(t, err)
	store := NewNoteStore(db)
	first := models.NewNote("old", "data", 1)
	require.NoError(t, store.Insert(&first))
	require.NoError(t, store.Close())

	db, err = Open(Config{Path: dbPath, SchemaVersion: 2, Logger: quietLogger()})
	require.NoError(t, err)
	store = NewNoteStore(db)
	defer store.Close()

	version, err := db.Version()
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count, "rebuild discards existing rows")

	second := models.NewNote("new", "data", 2)
	require.NoError(t, store.Insert(&second))
}

func TestOpen_Failures(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "Empty path", cfg: Config{}},
		{name: "Directory cannot be created", cfg: Config{Path: filepath.Join(blocker, "sub", "notes.db")}},
		{name: "Unknown driver", cfg: Config{Path: MemoryPath, Driver: "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = quietLogger()
			db, err := Open(tt.cfg)
			assert.ErrorIs(t, err, ErrOpen)
			assert.Nil(t, db)
		})
	}
}
