package model

import "time"

// CalendarNoteModel: catatan per tanggal, kunci natural date_key "YYYY-MM-DD".
// Upsert berulang pada kunci yang sama tidak pernah menduplikasi baris.
type CalendarNoteModel struct {
	DateKey   string    `json:"date_key" gorm:"column:date_key;primaryKey"`
	NoteText  string    `json:"note_text" gorm:"column:note_text"`
	UserID    string    `json:"user_id" gorm:"column:user_id"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (CalendarNoteModel) TableName() string {
	return "calendar_notes"
}
