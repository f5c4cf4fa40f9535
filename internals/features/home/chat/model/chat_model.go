package model

import "time"

// ChatMessage: satu entri log obrolan tamu.
type ChatMessage struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestIdentity: identitas tamu yang sudah dinomori ("路人N" + avatar angka).
type GuestIdentity struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

const (
	// Kunci penyimpanan log dan identitas (mengikuti nama lama dari web).
	LogKey      = "chat_messages_v1"
	IdentityKey = "chatbox_guest_identity_v1"
	// Log obrolan dijaga maksimal 200 entri, yang tertua dibuang.
	MaxMessages = 200
)
