package dto

// SendMessageRequest: body POST /api/chat.
type SendMessageRequest struct {
	Text     string `json:"text"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}
