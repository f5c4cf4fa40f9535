package model

import (
	"strconv"
	"time"

	"github.com/lib/pq"
)

// Empat permainan default untuk kotak suara.
var DefaultGames = []string{"璀璨寶石", "印加寶藏", "德國蟑螂", "寶可夢卡牌"}

// Kunci penyimpanan lokal (nama lama dari web).
const (
	TalliesKey = "mygame_votes_v1"
	GamesKey   = "vote_game_names_v1"
)

// VoteConfigModel: baris tunggal id=1; games selalu tepat 4 nama.
type VoteConfigModel struct {
	ID        int            `json:"id" gorm:"column:id;primaryKey"`
	Games     pq.StringArray `json:"games" gorm:"column:games;type:text[]"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (VoteConfigModel) TableName() string {
	return "vote_config"
}

func (m VoteConfigModel) Key() string {
	return strconv.Itoa(m.ID)
}

func Default() VoteConfigModel {
	return VoteConfigModel{
		ID:        1,
		Games:     pq.StringArray(DefaultGames),
		UpdatedAt: time.Now(),
	}
}
