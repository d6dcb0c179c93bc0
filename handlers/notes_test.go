package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"note-store/app"
	"note-store/config"
	"note-store/config/setup"
	"note-store/database"
	"note-store/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestApp creates an in-memory store and a Fiber app with all routes registered
func setupTestApp(t *testing.T, cfg *config.Config) (*fiber.App, *app.App) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(database.Config{Path: database.MemoryPath, Logger: logger})
	require.NoError(t, err, "Failed to initialize test database")

	store := database.NewNoteStore(db)
	t.Cleanup(func() { store.Close() })

	application := app.New(store, logger)

	if cfg == nil {
		cfg = &config.Config{}
	}
	fiberApp := fiber.New(fiber.Config{ErrorHandler: setup.CustomErrorHandler(logger)})
	setup.RegisterRoutes(fiberApp, application, cfg)

	return fiberApp, application
}

func seedNotes(t *testing.T, application *app.App, dates ...int64) []models.Note {
	t.Helper()

	notes := make([]models.Note, 0, len(dates))
	for _, date := range dates {
		note := models.NewNote("note "+strconv.FormatInt(date, 10), "content", date)
		require.NoError(t, application.Store.Insert(&note))
		notes = append(notes, note)
	}
	return notes
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestCreateNote(t *testing.T) {
	fiberApp, application := setupTestApp(t, nil)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "Invalid JSON body",
			requestBody:    nil,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "Missing title",
			requestBody:    map[string]interface{}{"content": "body", "date": 10},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
			validateBody: func(t *testing.T, body map[string]interface{}) {
				details := body["details"].([]interface{})
				require.Len(t, details, 1)
				assert.Equal(t, "title", details[0].(map[string]interface{})["field"])
			},
		},
		{
			name:           "Create new note",
			requestBody:    map[string]interface{}{"title": "Groceries", "content": "milk", "date": 10},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				note := body["note"].(map[string]interface{})
				assert.Equal(t, "Groceries", note["title"])
				assert.Equal(t, float64(10), note["date"])

				stored, err := application.Store.Get(int64(note["key"].(float64)))
				require.NoError(t, err)
				require.NotNil(t, stored)
				assert.Equal(t, "milk", stored.Content)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body interface{}
			if tt.requestBody != nil {
				body = tt.requestBody
			}

			status, decoded := doRequest(t, fiberApp, http.MethodPost, "/api/notes", body)
			assert.Equal(t, tt.expectedStatus, status)

			if tt.expectedError != "" {
				assert.Contains(t, decoded["error"], tt.expectedError)
			}
			if tt.validateBody != nil {
				tt.validateBody(t, decoded)
			}
		})
	}
}

func TestListNotes(t *testing.T) {
	fiberApp, application := setupTestApp(t, nil)
	seedNotes(t, application, 1, 2, 3, 4, 5)

	status, body := doRequest(t, fiberApp, http.MethodGet, "/api/notes?offset=2&limit=2", nil)
	require.Equal(t, http.StatusOK, status)

	notes := body["notes"].([]interface{})
	require.Len(t, notes, 2)
	assert.Equal(t, float64(3), notes[0].(map[string]interface{})["date"])
	assert.Equal(t, float64(2), notes[1].(map[string]interface{})["date"])
	assert.Equal(t, float64(5), body["total"])

	status, body = doRequest(t, fiberApp, http.MethodGet, "/api/notes?q=note%204", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(30), body["limit"])
}

func TestGetNote(t *testing.T) {
	fiberApp, application := setupTestApp(t, nil)
	seeded := seedNotes(t, application, 10, 30, 20)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedTitle  string
	}{
		{name: "By key", target: "/api/notes/" + strconv.FormatInt(seeded[0].Key, 10), expectedStatus: http.StatusOK, expectedTitle: "note 10"},
		{name: "Unknown key", target: "/api/notes/9999", expectedStatus: http.StatusNotFound},
		{name: "Malformed key", target: "/api/notes/abc", expectedStatus: http.StatusBadRequest},
		{name: "By position", target: "/api/notes/position/0", expectedStatus: http.StatusOK, expectedTitle: "note 30"},
		{name: "Position out of range", target: "/api/notes/position/3", expectedStatus: http.StatusNotFound},
		{name: "Negative position", target: "/api/notes/position/-1", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, fiberApp, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedTitle != "" {
				note := body["note"].(map[string]interface{})
				assert.Equal(t, tt.expectedTitle, note["title"])
			}
		})
	}
}

func TestCountNotes(t *testing.T) {
	fiberApp, application := setupTestApp(t, nil)
	seedNotes(t, application, 1, 2)

	status, body := doRequest(t, fiberApp, http.MethodGet, "/api/notes/count", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])
}

func TestUpdateNote(t *testing.T) {
	fiberApp, application := setupTestApp(t, nil)
	seeded := seedNotes(t, application, 10)
	target := "/api/notes/" + strconv.FormatInt(seeded[0].Key, 10)

	status, body := doRequest(t, fiberApp, http.MethodPut, target, map[string]interface{}{
		"title":   "Renamed",
		"content": "changed",
	})
	require.Equal(t, http.StatusOK, status)
	note := body["note"].(map[string]interface{})
	assert.Equal(t, "Renamed", note["title"])
	assert.Equal(t, float64(10), note["date"])

	status, _ = doRequest(t, fiberApp, http.MethodPut, "/api/notes/9999", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, fiberApp, http.MethodPut, target, map[string]interface{}{"title": " "})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDeleteNotes(t *testing.T) {
	fiberApp, application := setupTestApp(t, nil)
	seeded := seedNotes(t, application, 10, 30, 20)

	status, _ := doRequest(t, fiberApp, http.MethodDelete, "/api/notes/position/0", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, fiberApp, http.MethodDelete, "/api/notes/position/5", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, fiberApp, http.MethodDelete, "/api/notes/"+strconv.FormatInt(seeded[0].Key, 10), nil)
	assert.Equal(t, http.StatusOK, status)

	count, err := application.Store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	status, _ = doRequest(t, fiberApp, http.MethodDelete, "/api/notes", nil)
	assert.Equal(t, http.StatusOK, status)

	count, err = application.Store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTokenRequired(t *testing.T) {
	fiberApp, _ := setupTestApp(t, &config.Config{APIToken: "secret"})

	status, body := doRequest(t, fiberApp, http.MethodGet, "/api/notes/count", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Missing authorization", body["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/notes/count", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/notes/count", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = fiberApp.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ = doRequest(t, fiberApp, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
}
