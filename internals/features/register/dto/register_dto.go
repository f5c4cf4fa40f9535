package dto

// UpdateDateCardRequest: body PUT /api/register/dates/:order.
type UpdateDateCardRequest struct {
	EventDate string `json:"event_date" validate:"required"`
	ImageURL  string `json:"image_url"`
}

// CreateRegistrationRequest: body POST /api/register/registrations.
type CreateRegistrationRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Date       string `json:"date" validate:"required"`
}

// UpdateRegistrationRequest: body PUT /api/register/registrations/:id.
type UpdateRegistrationRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Date       string `json:"date" validate:"required"`
}
