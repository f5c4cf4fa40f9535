package dto

import "encoding/json"

// UpdateAnnouncementRequest: content sengaja RawMessage supaya angka/null
// bisa ditolak eksplisit dengan 400, bukan dipaksa jadi string oleh decoder.
type UpdateAnnouncementRequest struct {
	Content   json.RawMessage `json:"content"`
	UpdatedBy string          `json:"updatedBy"`
}

// ContentString mengembalikan (isi, true) hanya kalau content berupa string JSON.
func (r UpdateAnnouncementRequest) ContentString() (string, bool) {
	var s string
	if len(r.Content) == 0 {
		return "", false
	}
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", false
	}
	return s, true
}
