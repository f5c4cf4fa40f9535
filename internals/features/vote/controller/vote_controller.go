package controller

import (
	"time"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/vote/dto"
	"mygame_backend/internals/features/vote/model"
	helper "mygame_backend/internals/helpers"
	"mygame_backend/internals/syncstore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

var validateVote = validator.New()

// Konfigurasi game tersinkron ke remote; perolehan suara sengaja
// lokal-saja (web lama juga tidak pernah menulis tally ke Supabase).
type VoteController struct {
	Config *syncstore.Store[model.VoteConfigModel]
	FB     *fallback.Store
}

func NewVoteController(config *syncstore.Store[model.VoteConfigModel], fb *fallback.Store) *VoteController {
	return &VoteController{Config: config, FB: fb}
}

// =======================
// 🎲 Get Vote Config
// =======================
func (ctrl *VoteController) GetConfig(c *fiber.Ctx) error {
	row, ok := ctrl.Config.Get("1")
	if !ok {
		row = model.Default()
	}
	return helper.JsonSuccess(c, row)
}

// =======================
// ✏️ Update Vote Config
// =======================
func (ctrl *VoteController) UpdateConfig(c *fiber.Ctx) error {
	var body dto.UpdateConfigRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的請求內容")
	}
	if err := validateVote.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "games 必須是 4 個名稱")
	}

	row := model.VoteConfigModel{
		ID:        1,
		Games:     pq.StringArray(body.Games),
		UpdatedAt: time.Now(),
	}
	if err := ctrl.Config.Upsert(c.Context(), row); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonSuccessMsg(c, "遊戲名稱已更新", row)
}

// =======================
// 🗳️ Get Vote Tallies
// =======================
func (ctrl *VoteController) GetVotes(c *fiber.Ctx) error {
	var tallies [4]int
	if _, err := ctrl.FB.Get(model.TalliesKey, &tallies); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "讀取票數失敗")
	}
	return helper.JsonSuccess(c, tallies)
}

// =======================
// ➕ Cast Vote
// =======================
func (ctrl *VoteController) CastVote(c *fiber.Ctx) error {
	var body dto.CastVoteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "index 必須是 0-3")
	}
	if err := validateVote.Struct(&body); err != nil || *body.Index < 0 || *body.Index > 3 {
		return helper.JsonError(c, fiber.StatusBadRequest, "index 必須是 0-3")
	}

	var tallies [4]int
	if _, err := ctrl.FB.Get(model.TalliesKey, &tallies); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "讀取票數失敗")
	}
	tallies[*body.Index]++
	if err := ctrl.FB.Set(model.TalliesKey, tallies); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "儲存票數失敗")
	}
	return helper.JsonSuccess(c, tallies)
}
