package route

import (
	shopController "mygame_backend/internals/features/shop/controller"

	"github.com/gofiber/fiber/v2"
)

// 🛍️ Grid wishlist toko (12 slot tetap)
func ShopRoutes(router fiber.Router, ctrl *shopController.ShopController) {
	r := router.Group("/shop/items")

	r.Get("/", ctrl.GetItems)                     // 📄 Semua slot
	r.Post("/clear", ctrl.ClearItems)             // 🧹 Kosongkan semua slot
	r.Put("/:position", ctrl.UpdateItem)          // ✏️ Ubah satu slot
	r.Post("/:position/image", ctrl.UploadImage)  // 🖼️ Unggah gambar slot
}
