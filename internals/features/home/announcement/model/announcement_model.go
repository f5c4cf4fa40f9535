package model

import (
	"strconv"
	"time"
)

// Konten publik default sebelum pengurus menulis pengumuman pertama.
const DefaultContent = "💌最新公告\n" +
	"🔸下次桌遊將在10/13舉行!\n" +
	"🔸歡迎推薦遊戲品項，請至桌遊投票區開盲盒!\n" +
	"🔸本月主題日_夜市人生，將舉行射擊遊戲!歡迎來練習!"

// AnnouncementModel: baris tunggal id=1 di tabel announcements.
type AnnouncementModel struct {
	ID        int       `json:"id" gorm:"column:id;primaryKey"`
	Content   string    `json:"content" gorm:"column:content"`
	UpdatedBy string    `json:"updated_by" gorm:"column:updated_by"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (AnnouncementModel) TableName() string {
	return "announcements"
}

func (m AnnouncementModel) Key() string {
	return strconv.Itoa(m.ID)
}

// Default mengembalikan baris seed untuk tabel kosong.
func Default() AnnouncementModel {
	return AnnouncementModel{
		ID:        1,
		Content:   DefaultContent,
		UpdatedBy: "system",
		UpdatedAt: time.Now(),
	}
}
