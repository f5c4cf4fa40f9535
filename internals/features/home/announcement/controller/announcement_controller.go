package controller

import (
	"time"

	"mygame_backend/internals/features/home/announcement/dto"
	"mygame_backend/internals/features/home/announcement/model"
	helper "mygame_backend/internals/helpers"
	"mygame_backend/internals/syncstore"

	"github.com/gofiber/fiber/v2"
)

type AnnouncementController struct {
	Store *syncstore.Store[model.AnnouncementModel]
	// Configured false = backend remote tidak tersedia; endpoint ini
	// mengikuti kontrak lama: 500 "Supabase 未設定", bukan degradasi diam.
	Configured bool
}

func NewAnnouncementController(store *syncstore.Store[model.AnnouncementModel], configured bool) *AnnouncementController {
	return &AnnouncementController{Store: store, Configured: configured}
}

// =======================
// 📄 Get Announcement
// =======================
func (ctrl *AnnouncementController) GetAnnouncement(c *fiber.Ctx) error {
	if !ctrl.Configured {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Supabase 未設定")
	}

	row, ok := ctrl.Store.Get("1")
	if !ok {
		row = model.Default()
	}
	return helper.JsonSuccess(c, row)
}

// =======================
// ✏️ Update Announcement
// =======================
func (ctrl *AnnouncementController) UpdateAnnouncement(c *fiber.Ctx) error {
	if !ctrl.Configured {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Supabase 未設定")
	}

	var body dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "content 必須是字串")
	}
	content, ok := body.ContentString()
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "content 必須是字串")
	}
	updatedBy := body.UpdatedBy
	if updatedBy == "" {
		updatedBy = "admin"
	}

	row := model.AnnouncementModel{
		ID:        1,
		Content:   content,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now(),
	}
	if err := ctrl.Store.Upsert(c.Context(), row); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}

	return helper.JsonSuccessMsg(c, "公告更新成功", row)
}
