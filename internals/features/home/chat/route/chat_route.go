package route

import (
	chatController "mygame_backend/internals/features/home/chat/controller"

	"github.com/gofiber/fiber/v2"
)

// 💬 Obrolan tamu (log file lokal, tanpa backend remote)
func ChatRoutes(router fiber.Router, ctrl *chatController.ChatController) {
	r := router.Group("/chat")

	r.Get("/", ctrl.GetMessages)  // 📄 Ambil seluruh log
	r.Post("/", ctrl.SendMessage) // ➕ Kirim pesan (201)
}
