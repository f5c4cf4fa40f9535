package model

import "time"

// RegistrationModel: satu pendaftaran peserta untuk satu tanggal acara.
// Kolom tanggal di remote bisa bernama event_date atau date (deployment
// lama); resolver yang menentukan, model selalu memakai event_date.
type RegistrationModel struct {
	ID         int64     `json:"id" gorm:"column:id;primaryKey"`
	Name       string    `json:"name" gorm:"column:name"`
	Department string    `json:"department" gorm:"column:department"`
	EventDate  string    `json:"date" gorm:"column:event_date"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

const DetailsFallbackKey = "registration_details_v1"
