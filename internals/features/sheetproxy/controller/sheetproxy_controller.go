package controller

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"mygame_backend/internals/configs"
	"mygame_backend/internals/features/sheetproxy/service"
	"mygame_backend/internals/features/shop/model"
	helper "mygame_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type SheetProxyController struct {
	Client *service.Client
}

func NewSheetProxyController(client *service.Client) *SheetProxyController {
	return &SheetProxyController{Client: client}
}

// =======================
// 📄 Proxy GET /api/sheet
// =======================
func (ctrl *SheetProxyController) GetSheet(c *fiber.Ctx) error {
	if ctrl.Client.SheetURL == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "SHEET_API_URL 未設定")
	}
	body, err := ctrl.Client.Fetch(c.Context(), ctrl.Client.SheetURL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	data := service.ParseMaybeJSONP(body)
	return c.Status(fiber.StatusOK).JSON(data)
}

// =======================
// ➕ Proxy POST /api/sheet
// =======================
func (ctrl *SheetProxyController) PostSheet(c *fiber.Ctx) error {
	if ctrl.Client.SheetURL == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "SHEET_API_URL 未設定")
	}
	body, err := ctrl.Client.PostJSON(c.Context(), ctrl.Client.SheetURL, c.Body())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	data := service.ParseMaybeJSONP(body)
	return c.Status(fiber.StatusOK).JSON(data)
}

// =======================
// 📄 Proxy GET /api/shop
// =======================
func (ctrl *SheetProxyController) GetShopSheet(c *fiber.Ctx) error {
	if ctrl.Client.ShopURL == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "SHOP_SCRIPT_URL 未設定")
	}
	body, err := ctrl.Client.Fetch(c.Context(), ctrl.Client.ShopURL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "讀取失敗")
	}
	data := service.ParseMaybeJSONP(body)
	return c.Status(fiber.StatusOK).JSON(data)
}

// =======================
// ➕ Proxy POST /api/shop
// =======================
// Multipart item{0..11}_name / item{0..11}_image: gambar di-embed (upload
// storage bila ada service key, kalau tidak data URL) lalu baris
// {name,image} diteruskan sebagai JSON ke Apps Script.
func (ctrl *SheetProxyController) PostShopSheet(c *fiber.Ctx) error {
	if ctrl.Client.ShopURL == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "SHOP_SCRIPT_URL 未設定")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的表單內容")
	}

	type row struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	rows := make([]row, 0, model.SlotCount)

	for i := 0; i < model.SlotCount; i++ {
		name := ""
		if vals := form.Value[fmt.Sprintf("item%d_name", i)]; len(vals) > 0 {
			name = vals[0]
		}
		imageURL := ""
		if files := form.File[fmt.Sprintf("item%d_image", i)]; len(files) > 0 {
			imageURL = embedImage(files[0])
		}
		if name == "" && imageURL == "" {
			continue
		}
		rows = append(rows, row{Name: name, Image: imageURL})
	}

	payload, err := sonic.Marshal(rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "上傳失敗")
	}
	if _, err := ctrl.Client.PostJSON(c.Context(), ctrl.Client.ShopURL, payload); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "上傳失敗")
	}
	return helper.JsonSuccess(c, fiber.Map{"rows": len(rows)})
}

// embedImage mengubah satu file unggahan jadi URL: lewat pipeline WebP +
// storage bila memungkinkan, kalau tidak data URL; file yang tidak bisa
// di-decode di-embed mentah (perilaku lama). Best-effort, tanpa error keras.
func embedImage(fh *multipart.FileHeader) string {
	src, err := fh.Open()
	if err != nil {
		return ""
	}
	defer src.Close()
	all, err := io.ReadAll(src)
	if err != nil {
		return ""
	}

	img, err := helper.DecodeImage(all, fh.Filename)
	if err != nil {
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(all)
	}
	encoded, err := helper.EncodeItemWebP(img, 1024, 80)
	if err != nil {
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(all)
	}

	if configs.SupabaseServiceKey != "" {
		if url, err := helper.UploadWebPToStorage("shop-images", encoded); err == nil {
			return url
		} else {
			log.Printf("⚠️ [shop-proxy] upload storage gagal, pakai data URL: %v", err)
		}
	}
	return helper.WebPDataURL(encoded)
}
