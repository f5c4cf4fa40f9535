package controller

import (
	"sort"
	"strconv"

	"mygame_backend/internals/features/register/dto"
	"mygame_backend/internals/features/register/model"
	"mygame_backend/internals/features/register/service"
	helper "mygame_backend/internals/helpers"
	"mygame_backend/internals/syncstore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validateRegister = validator.New()

type RegisterController struct {
	Dates         *syncstore.Store[model.EventDateModel]
	Registrations *service.RegistrationService
}

func NewRegisterController(dates *syncstore.Store[model.EventDateModel], regs *service.RegistrationService) *RegisterController {
	return &RegisterController{Dates: dates, Registrations: regs}
}

// =======================
// 📄 Get Date Cards
// =======================
func (ctrl *RegisterController) GetDates(c *fiber.Ctx) error {
	cards := ctrl.Dates.All()
	sort.Slice(cards, func(i, j int) bool { return cards[i].DisplayOrder < cards[j].DisplayOrder })
	if len(cards) > model.CardCount {
		cards = cards[:model.CardCount]
	}
	return helper.JsonSuccess(c, cards)
}

// =======================
// ✏️ Update Date Card
// =======================
// Mengganti tanggal kartu ke-:order (1..3). Kalau tanggalnya berubah,
// pendaftaran yang menumpang tanggal lama ikut dipindah; dua operasi itu
// independen dan tidak saling rollback.
func (ctrl *RegisterController) UpdateDateCard(c *fiber.Ctx) error {
	order, err := strconv.Atoi(c.Params("order"))
	if err != nil || order < 1 || order > model.CardCount {
		return helper.JsonError(c, fiber.StatusBadRequest, "order 必須是 1-3")
	}

	var body dto.UpdateDateCardRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的請求內容")
	}
	if err := validateRegister.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "event_date 為必填")
	}

	newKey := helper.NormalizeDateKey(body.EventDate)

	// Kartu lama di posisi yang sama (kalau ada) menentukan kunci lama.
	var oldKey string
	for _, card := range ctrl.Dates.All() {
		if card.DisplayOrder == order {
			oldKey = card.EventDate
			break
		}
	}

	row := model.EventDateModel{EventDate: newKey, ImageURL: body.ImageURL, DisplayOrder: order}
	if row.ImageURL == "" {
		if old, ok := ctrl.Dates.Get(oldKey); ok {
			row.ImageURL = old.ImageURL
		}
	}
	if err := ctrl.Dates.Upsert(c.Context(), row); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}

	if oldKey != "" && oldKey != newKey {
		// Buang kunci lama supaya kartu tetap tepat 3.
		if err := ctrl.Dates.Delete(c.Context(), oldKey); err != nil {
			return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
		}
		if err := ctrl.Registrations.RenameEventDate(c.Context(), oldKey, newKey); err != nil {
			return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
		}
	}

	return helper.JsonSuccessMsg(c, "日期已更新", row)
}

// =======================
// 📄 Get Registrations
// =======================
func (ctrl *RegisterController) GetRegistrations(c *fiber.Ctx) error {
	return helper.JsonSuccess(c, ctrl.Registrations.List())
}

// =======================
// ➕ Create Registration
// =======================
func (ctrl *RegisterController) CreateRegistration(c *fiber.Ctx) error {
	var body dto.CreateRegistrationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的請求內容")
	}
	if err := validateRegister.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "name、department、date 為必填")
	}

	row, err := ctrl.Registrations.Create(c.Context(), body.Name, body.Department, helper.NormalizeDateKey(body.Date))
	if err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonCreated(c, row)
}

// =======================
// ✏️ Update Registration
// =======================
func (ctrl *RegisterController) UpdateRegistration(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id 必須是數字")
	}

	var body dto.UpdateRegistrationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的請求內容")
	}
	if err := validateRegister.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "name、department、date 為必填")
	}

	row, err := ctrl.Registrations.Update(c.Context(), id, body.Name, body.Department, helper.NormalizeDateKey(body.Date))
	if err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonSuccessMsg(c, "報名已更新", row)
}

// =======================
// 🗑️ Delete Registration
// =======================
func (ctrl *RegisterController) DeleteRegistration(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id 必須是數字")
	}

	if err := ctrl.Registrations.Delete(c.Context(), id); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonSuccessMsg(c, "報名已刪除", fiber.Map{"id": id})
}
