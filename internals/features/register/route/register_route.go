package route

import (
	registerController "mygame_backend/internals/features/register/controller"

	"github.com/gofiber/fiber/v2"
)

// 📝 Pendaftaran acara + kartu tanggal
func RegisterRoutes(router fiber.Router, ctrl *registerController.RegisterController) {
	r := router.Group("/register")

	r.Get("/dates", ctrl.GetDates)            // 📄 3 kartu tanggal
	r.Put("/dates/:order", ctrl.UpdateDateCard) // ✏️ Ganti tanggal kartu

	r.Get("/registrations", ctrl.GetRegistrations)          // 📄 Daftar pendaftaran
	r.Post("/registrations", ctrl.CreateRegistration)       // ➕ Daftar baru
	r.Put("/registrations/:id", ctrl.UpdateRegistration)    // ✏️ Ubah pendaftaran
	r.Delete("/registrations/:id", ctrl.DeleteRegistration) // 🗑️ Hapus pendaftaran
}
