package dto

// UpsertNoteRequest: body PUT /api/calendar/notes/:date_key.
// NoteText kosong berarti hapus catatan tanggal itu.
type UpsertNoteRequest struct {
	NoteText string `json:"note_text"`
	UserID   string `json:"user_id"`
}
