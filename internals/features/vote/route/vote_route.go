package route

import (
	voteController "mygame_backend/internals/features/vote/controller"

	"github.com/gofiber/fiber/v2"
)

// 🗳️ Voting permainan
func VoteRoutes(router fiber.Router, ctrl *voteController.VoteController) {
	r := router.Group("/vote")

	r.Get("/config", ctrl.GetConfig)    // 📄 Nama 4 permainan
	r.Put("/config", ctrl.UpdateConfig) // ✏️ Ganti nama permainan
	r.Get("/votes", ctrl.GetVotes)      // 📄 Perolehan suara
	r.Post("/votes", ctrl.CastVote)     // ➕ Tambah satu suara
}
