package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/calendar/model"
	"mygame_backend/internals/syncstore"
)

func newCalendarApp(t *testing.T) (*fiber.App, *syncstore.Store[model.CalendarNoteModel]) {
	t.Helper()
	fb := fallback.New(t.TempDir())
	store := syncstore.New(syncstore.Config[model.CalendarNoteModel]{
		Name:        "calendar_notes",
		KeyOf:       func(n model.CalendarNoteModel) string { return n.DateKey },
		FallbackKey: "calendar_notes_v1",
	}, nil, fb)
	require.NoError(t, store.Load(context.Background()))

	ctrl := NewCalendarController(store)
	app := fiber.New()
	app.Get("/api/calendar/notes", ctrl.GetNotes)
	app.Put("/api/calendar/notes/:date_key", ctrl.UpsertNote)
	return app, store
}

func putNote(t *testing.T, app *fiber.App, dateKey, payload string) int {
	t.Helper()
	req := httptest.NewRequest("PUT", "/api/calendar/notes/"+dateKey, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestUpsertNoteRejectsBadDateKey(t *testing.T) {
	app, _ := newCalendarApp(t)
	assert.Equal(t, fiber.StatusBadRequest, putNote(t, app, "3%2F1", `{"note_text": "x"}`))
}

func TestUpsertNoteNeverDuplicates(t *testing.T) {
	app, store := newCalendarApp(t)

	assert.Equal(t, fiber.StatusOK, putNote(t, app, "2025-03-01", `{"note_text": "練習"}`))
	assert.Equal(t, fiber.StatusOK, putNote(t, app, "2025-03-01", `{"note_text": "比賽"}`))

	assert.Equal(t, 1, store.Len())
	row, ok := store.Get("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, "比賽", row.NoteText)
}

func TestGetNotesAsMap(t *testing.T) {
	app, _ := newCalendarApp(t)
	putNote(t, app, "2025-03-01", `{"note_text": "練習"}`)
	putNote(t, app, "2025-03-08", `{"note_text": "聚會"}`)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/calendar/notes", nil))
	require.NoError(t, err)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{
		"2025-03-01": "練習",
		"2025-03-08": "聚會",
	}, body.Data)
}

func TestEmptyNoteClears(t *testing.T) {
	app, store := newCalendarApp(t)
	putNote(t, app, "2025-03-01", `{"note_text": "練習"}`)

	assert.Equal(t, fiber.StatusOK, putNote(t, app, "2025-03-01", `{"note_text": ""}`))
	_, ok := store.Get("2025-03-01")
	assert.False(t, ok)

	// Menghapus tanggal yang memang kosong bukan error.
	assert.Equal(t, fiber.StatusOK, putNote(t, app, "2025-04-01", `{"note_text": "  "}`))
}
