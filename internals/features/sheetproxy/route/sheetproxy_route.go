package route

import (
	sheetproxyController "mygame_backend/internals/features/sheetproxy/controller"

	"github.com/gofiber/fiber/v2"
)

// 📊 Proxy ke endpoint Apps Script (sheet pendaftaran + sheet toko)
func SheetProxyRoutes(router fiber.Router, ctrl *sheetproxyController.SheetProxyController) {
	router.Get("/sheet", ctrl.GetSheet)       // 📄 Baca sheet pendaftaran
	router.Post("/sheet", ctrl.PostSheet)     // ➕ Tulis sheet pendaftaran
	router.Get("/shop", ctrl.GetShopSheet)    // 📄 Baca sheet toko
	router.Post("/shop", ctrl.PostShopSheet)  // ➕ Tulis sheet toko
}
