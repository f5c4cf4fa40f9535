package helper

import (
	"github.com/gofiber/fiber/v2"
)

// ✅ Respons sukses: { success: true, data }
func JsonSuccess(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ✅ Respons sukses + pesan: { success: true, data, message }
func JsonSuccessMsg(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// ✅ Created (201) untuk resource baru; body = resource itu sendiri
func JsonCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// ✅ Error sederhana: { error }
func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// ✅ Error operasi remote yang gagal: { success: false, error }
func JsonFailed(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
