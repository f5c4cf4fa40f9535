package controller

import (
	"io"
	"sort"
	"strconv"
	"time"

	"mygame_backend/internals/configs"
	"mygame_backend/internals/features/shop/dto"
	"mygame_backend/internals/features/shop/model"
	helper "mygame_backend/internals/helpers"
	"mygame_backend/internals/syncstore"

	"github.com/gofiber/fiber/v2"
)

const imageBucket = "shop-images"

type ShopController struct {
	Store *syncstore.Store[model.ShopItemModel]
}

func NewShopController(store *syncstore.Store[model.ShopItemModel]) *ShopController {
	return &ShopController{Store: store}
}

// =======================
// 📄 Get All Items
// =======================
func (ctrl *ShopController) GetItems(c *fiber.Ctx) error {
	items := ctrl.Store.All()
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return helper.JsonSuccess(c, items)
}

// =======================
// ✏️ Update Item Slot
// =======================
func (ctrl *ShopController) UpdateItem(c *fiber.Ctx) error {
	pos, err := parsePosition(c.Params("position"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "position 必須是 0-11")
	}

	var body dto.UpdateItemRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無效的請求內容")
	}

	row, ok := ctrl.Store.Get(strconv.Itoa(pos))
	if !ok {
		row = model.ShopItemModel{Position: pos}
	}
	if body.ItemName != nil {
		row.ItemName = *body.ItemName
	}
	if body.ImageURL != nil {
		row.ImageURL = *body.ImageURL
	}
	row.UpdatedAt = time.Now()

	if err := ctrl.Store.Upsert(c.Context(), row); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonSuccessMsg(c, "商品已更新", row)
}

// =======================
// 🖼️ Upload Item Image
// =======================
// Multipart field "image": decode → downscale → WebP → Supabase Storage;
// tanpa service key hasilnya di-embed sebagai data URL.
func (ctrl *ShopController) UploadImage(c *fiber.Ctx) error {
	pos, err := parsePosition(c.Params("position"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "position 必須是 0-11")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "缺少 image 檔案")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無法開啟上傳檔案")
	}
	defer src.Close()
	all, err := io.ReadAll(src)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "無法讀取上傳檔案")
	}

	img, err := helper.DecodeImage(all, fileHeader.Filename)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "不支援的圖片格式")
	}
	encoded, err := helper.EncodeItemWebP(img, 1024, 80)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "圖片轉檔失敗")
	}

	var imageURL string
	if configs.SupabaseServiceKey != "" {
		imageURL, err = helper.UploadWebPToStorage(imageBucket, encoded)
		if err != nil {
			return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
		}
	} else {
		imageURL = helper.WebPDataURL(encoded)
	}

	row, ok := ctrl.Store.Get(strconv.Itoa(pos))
	if !ok {
		row = model.ShopItemModel{Position: pos}
	}
	row.ImageURL = imageURL
	row.UpdatedAt = time.Now()

	if err := ctrl.Store.Upsert(c.Context(), row); err != nil {
		return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
	}
	return helper.JsonSuccessMsg(c, "圖片已更新", row)
}

// =======================
// 🧹 Clear All Slots
// =======================
// Mengosongkan isi semua slot tanpa menghapus baris.
func (ctrl *ShopController) ClearItems(c *fiber.Ctx) error {
	now := time.Now()
	for i := 0; i < model.SlotCount; i++ {
		row := model.ShopItemModel{Position: i, UpdatedAt: now}
		if err := ctrl.Store.Upsert(c.Context(), row); err != nil {
			return helper.JsonFailed(c, fiber.StatusInternalServerError, syncstore.UserMessage(err))
		}
	}
	return helper.JsonSuccessMsg(c, "所有商品已清空", fiber.Map{"cleared": model.SlotCount})
}

func parsePosition(raw string) (int, error) {
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if pos < 0 || pos >= model.SlotCount {
		return 0, strconv.ErrRange
	}
	return pos, nil
}
