package model

// Kartu tanggal acara: selalu tepat 3 kartu, diurut display_order 1..3.
// Kunci natural event_date memakai bentuk "M/D" hasil normalisasi.
type EventDateModel struct {
	EventDate    string `json:"event_date" gorm:"column:event_date;primaryKey"`
	ImageURL     string `json:"image_url" gorm:"column:image_url"`
	DisplayOrder int    `json:"display_order" gorm:"column:display_order"`
}

func (EventDateModel) TableName() string {
	return "event_dates"
}

func (m EventDateModel) Key() string {
	return m.EventDate
}

const CardCount = 3

const DatesFallbackKey = "register_page_dates_v3"

// DefaultCards: tiga kartu bawaan sebelum pengurus mengubah tanggal.
func DefaultCards() []EventDateModel {
	return []EventDateModel{
		{EventDate: "1/5", ImageURL: "/game_16.png", DisplayOrder: 1},
		{EventDate: "1/12", ImageURL: "/game_17.png", DisplayOrder: 2},
		{EventDate: "1/19", ImageURL: "/game_18.png", DisplayOrder: 3},
	}
}
