package dto

// UpdateConfigRequest: body PUT /api/vote/config. Harus tepat 4 nama.
type UpdateConfigRequest struct {
	Games []string `json:"games" validate:"required,len=4,dive,required"`
}

// CastVoteRequest: body POST /api/vote/votes.
type CastVoteRequest struct {
	Index *int `json:"index" validate:"required"`
}
