package controller

import (
	"encoding/json"
	"strings"
	"time"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/home/chat/dto"
	"mygame_backend/internals/features/home/chat/model"
	"mygame_backend/internals/features/home/chat/service"
	helper "mygame_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Obrolan tamu sengaja tidak disinkron ke remote: lognya file lokal
// dengan batas 200 entri, seperti perilaku web lama.
type ChatController struct {
	FB       *fallback.Store
	Registry *service.GuestRegistry
}

func NewChatController(fb *fallback.Store, reg *service.GuestRegistry) *ChatController {
	return &ChatController{FB: fb, Registry: reg}
}

// =======================
// 📄 Get Messages
// =======================
func (ctrl *ChatController) GetMessages(c *fiber.Ctx) error {
	raw, err := ctrl.FB.ReadLog(model.LogKey)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "讀取訊息失敗")
	}
	out := make([]model.ChatMessage, 0, len(raw))
	for _, entry := range raw {
		var m model.ChatMessage
		if err := json.Unmarshal(entry, &m); err == nil {
			out = append(out, m)
		}
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// =======================
// ➕ Send Message
// =======================
func (ctrl *ChatController) SendMessage(c *fiber.Ctx) error {
	var body dto.SendMessageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "text is required")
	}

	text := strings.TrimSpace(body.Text)
	if text == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "text is required")
	}

	nickname, avatar := body.Nickname, body.Avatar
	if nickname == "" {
		id := ctrl.Registry.Identity(clientKey(c))
		nickname, avatar = id.Nickname, id.Avatar
	}

	msg := model.ChatMessage{
		ID:        uuid.New().String(),
		Nickname:  nickname,
		Avatar:    avatar,
		Text:      text,
		CreatedAt: time.Now(),
	}

	entry, err := json.Marshal(msg)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "儲存訊息失敗")
	}
	if err := ctrl.FB.AppendCapped(model.LogKey, entry, model.MaxMessages); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "儲存訊息失敗")
	}

	return helper.JsonCreated(c, msg)
}

// clientKey: header eksplisit kalau ada, kalau tidak jatuh ke IP.
func clientKey(c *fiber.Ctx) string {
	if k := c.Get("X-Guest-Key"); k != "" {
		return k
	}
	return c.IP()
}
