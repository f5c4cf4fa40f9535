package route

import (
	calendarController "mygame_backend/internals/features/calendar/controller"

	"github.com/gofiber/fiber/v2"
)

// 📅 Catatan kalender per tanggal
func CalendarRoutes(router fiber.Router, ctrl *calendarController.CalendarController) {
	r := router.Group("/calendar")

	r.Get("/notes", ctrl.GetNotes)            // 📄 Semua catatan
	r.Put("/notes/:date_key", ctrl.UpsertNote) // ✏️ Simpan/hapus catatan
}
