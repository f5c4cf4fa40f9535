package dto

// UpdateItemRequest: body PUT /api/shop/items/:position.
// Field nil = tidak diubah; string kosong = dikosongkan.
type UpdateItemRequest struct {
	ItemName *string `json:"item_name"`
	ImageURL *string `json:"image_url"`
}
