package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/shop/model"
	"mygame_backend/internals/syncstore"
)

func newShopApp(t *testing.T) (*fiber.App, *syncstore.Store[model.ShopItemModel]) {
	t.Helper()
	fb := fallback.New(t.TempDir())
	store := syncstore.New(syncstore.Config[model.ShopItemModel]{
		Name:        "shop_items",
		KeyOf:       model.ShopItemModel.Key,
		Seed:        model.SeedItems,
		FallbackKey: model.FallbackKey,
	}, nil, fb)
	require.NoError(t, store.Load(context.Background()))

	ctrl := NewShopController(store)
	app := fiber.New()
	app.Get("/api/shop/items", ctrl.GetItems)
	app.Post("/api/shop/items/clear", ctrl.ClearItems)
	app.Put("/api/shop/items/:position", ctrl.UpdateItem)
	app.Post("/api/shop/items/:position/image", ctrl.UploadImage)
	return app, store
}

func TestGetItemsSeedsTwelveSlots(t *testing.T) {
	app, _ := newShopApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/shop/items", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.ShopItemModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, model.SlotCount)
	for i, item := range body.Data {
		assert.Equal(t, i, item.Position)
	}
}

func TestUpdateItemValidatesPosition(t *testing.T) {
	app, _ := newShopApp(t)

	req := httptest.NewRequest("PUT", "/api/shop/items/12",
		bytes.NewBufferString(`{"item_name": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateItem(t *testing.T) {
	app, store := newShopApp(t)

	req := httptest.NewRequest("PUT", "/api/shop/items/3",
		bytes.NewBufferString(`{"item_name": "璀璨寶石"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	row, ok := store.Get("3")
	require.True(t, ok)
	assert.Equal(t, "璀璨寶石", row.ItemName)
	// Field yang tidak dikirim tidak berubah.
	assert.Equal(t, "", row.ImageURL)
}

func TestUploadImageEmbedsDataURL(t *testing.T) {
	app, store := newShopApp(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	part, err := w.CreateFormFile("image", "item.png")
	require.NoError(t, err)
	_, err = part.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/shop/items/5/image", &form)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	row, ok := store.Get("5")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(row.ImageURL, "data:image/webp;base64,"))
}

func TestClearItemsKeepsSlots(t *testing.T) {
	app, store := newShopApp(t)

	req := httptest.NewRequest("PUT", "/api/shop/items/0",
		bytes.NewBufferString(`{"item_name": "a", "image_url": "b"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/shop/items/clear", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, model.SlotCount, store.Len())
	for _, item := range store.All() {
		assert.Empty(t, item.ItemName)
		assert.Empty(t, item.ImageURL)
	}
}
