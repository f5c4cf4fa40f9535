package controller

import (
	"regexp"
	"strings"
	"time"

	"mygame_backend/internals/features/calendar/dto"
	"mygame_backend/internals/features/calendar/model"
	helper "mygame_backend/internals/helpers"
	"mygame_backend/internals/syncstore"

	"github.com/gofiber/fiber/v2"
)

var dateKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CalendarController struct {
	Store *syncstore.Store[model.CalendarNoteModel]
}

func NewCalendarController(store *syncstore.Store[model.CalendarNoteModel]) *CalendarController {
	return &CalendarController{Store: store}
}

// =======================
// 📅 Get All Notes
// =======================
// Respons: { "2025-03-01": "練習日", ... }
func (ctrl *CalendarController) GetNotes(c *fiber.Ctx) error {
	notes := map[string]string{}
	for _, row := range ctrl.Store.All() {
		notes[row.DateKey] = row.NoteText
	}
	return helper.JsonSuccess(c, notes)
}

// =======================
// ✏️ Upsert / Clear Note
// =======================
func (ctrl *CalendarController) UpsertNote(c *fiber.Ctx) error {
	dateKey := c.Params("date_key")
	if !dateKeyRe.MatchString(dateKey) {
		return helper.JsonError(c, fiber.StatusBadRequest, "date_key 必須是 YYYY-MM-DD")
	}

	var body dto.UpsertNoteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的請求內容")
	}

	// Catatan kosong = hapus; tanggal yang memang belum punya catatan
	// bukan error.
	if strings.TrimSpace(body.NoteText) == "" {
		if _, ok := ctrl.Store.Get(dateKey); !ok {
			return helper.JsonSuccessMsg(c, "備註已清除", fiber.Map{"date_key": dateKey})
		}
		if err := ctrl.Store.Delete(c.Context(), dateKey); err != nil {
			return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
		}
		return helper.JsonSuccessMsg(c, "備註已清除", fiber.Map{"date_key": dateKey})
	}

	row := model.CalendarNoteModel{
		DateKey:   dateKey,
		NoteText:  body.NoteText,
		UserID:    body.UserID,
		UpdatedAt: time.Now(),
	}
	if err := ctrl.Store.Upsert(c.Context(), row); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonSuccessMsg(c, "備註已儲存", row)
}
