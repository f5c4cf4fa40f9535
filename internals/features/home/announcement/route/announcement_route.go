package route

import (
	announcementController "mygame_backend/internals/features/home/announcement/controller"

	"github.com/gofiber/fiber/v2"
)

// 📢 Papan pengumuman (baris tunggal, kontrak lama dipertahankan)
func AnnouncementRoutes(router fiber.Router, ctrl *announcementController.AnnouncementController) {
	r := router.Group("/announcements")

	r.Get("/", ctrl.GetAnnouncement)     // 📄 Baca pengumuman
	r.Post("/", ctrl.UpdateAnnouncement) // ✏️ Perbarui pengumuman
}
