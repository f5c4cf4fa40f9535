package model

import (
	"strconv"
	"time"
)

// Grid wishlist toko: tepat 12 slot tetap, posisi 0..11. Slot tidak pernah
// dihapus, hanya dikosongkan isinya.
const SlotCount = 12

const FallbackKey = "shop_page_items_v1"

type ShopItemModel struct {
	Position  int       `json:"position" gorm:"column:position;primaryKey"`
	ItemName  string    `json:"item_name" gorm:"column:item_name"`
	ImageURL  string    `json:"image_url" gorm:"column:image_url"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ShopItemModel) TableName() string {
	return "shop_items"
}

func (m ShopItemModel) Key() string {
	return strconv.Itoa(m.Position)
}

// SeedItems: 12 slot kosong untuk tabel yang baru dibuat.
func SeedItems() []ShopItemModel {
	now := time.Now()
	items := make([]ShopItemModel, 0, SlotCount)
	for i := 0; i < SlotCount; i++ {
		items = append(items, ShopItemModel{Position: i, UpdatedAt: now})
	}
	return items
}
