package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/register/model"
	"mygame_backend/internals/features/register/service"
	"mygame_backend/internals/syncstore"
)

func newRegisterApp(t *testing.T) (*fiber.App, *syncstore.Store[model.EventDateModel], *service.RegistrationService) {
	t.Helper()
	fb := fallback.New(t.TempDir())

	dates := syncstore.New(syncstore.Config[model.EventDateModel]{
		Name:        "event_dates",
		KeyOf:       model.EventDateModel.Key,
		Seed:        model.DefaultCards,
		FallbackKey: model.DatesFallbackKey,
	}, nil, fb)
	require.NoError(t, dates.Load(context.Background()))

	regs := service.NewRegistrationService(nil, nil, fb)
	require.NoError(t, regs.Load(context.Background()))

	ctrl := NewRegisterController(dates, regs)
	app := fiber.New()
	app.Get("/api/register/dates", ctrl.GetDates)
	app.Put("/api/register/dates/:order", ctrl.UpdateDateCard)
	app.Get("/api/register/registrations", ctrl.GetRegistrations)
	app.Post("/api/register/registrations", ctrl.CreateRegistration)
	app.Put("/api/register/registrations/:id", ctrl.UpdateRegistration)
	app.Delete("/api/register/registrations/:id", ctrl.DeleteRegistration)
	return app, dates, regs
}

func TestGetDatesDefaults(t *testing.T) {
	app, _, _ := newRegisterApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/register/dates", nil))
	require.NoError(t, err)

	var body struct {
		Data []model.EventDateModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, model.CardCount)
	assert.Equal(t, "1/5", body.Data[0].EventDate)
	assert.Equal(t, "1/12", body.Data[1].EventDate)
	assert.Equal(t, "1/19", body.Data[2].EventDate)
}

func TestUpdateDateCardNormalizesAndRenames(t *testing.T) {
	app, dates, regs := newRegisterApp(t)

	// Pendaftaran menumpang tanggal kartu pertama.
	_, err := regs.Create(context.Background(), "小明", "資工系", "1/5")
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/register/dates/1",
		bytes.NewBufferString(`{"event_date": "02/02"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Kunci ternormalisasi, kartu tetap 3, kunci lama hilang.
	_, ok := dates.Get("2/2")
	assert.True(t, ok)
	_, ok = dates.Get("1/5")
	assert.False(t, ok)
	assert.Equal(t, model.CardCount, dates.Len())

	// Pendaftaran ikut pindah tanggal.
	rows := regs.List()
	require.Len(t, rows, 1)
	assert.Equal(t, "2/2", rows[0].EventDate)
}

func TestUpdateDateCardValidatesOrder(t *testing.T) {
	app, _, _ := newRegisterApp(t)

	req := httptest.NewRequest("PUT", "/api/register/dates/4",
		bytes.NewBufferString(`{"event_date": "2/2"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateRegistrationValidates(t *testing.T) {
	app, _, _ := newRegisterApp(t)

	req := httptest.NewRequest("POST", "/api/register/registrations",
		bytes.NewBufferString(`{"name": "小明", "date": "1/5"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegistrationLifecycle(t *testing.T) {
	app, _, regs := newRegisterApp(t)

	req := httptest.NewRequest("POST", "/api/register/registrations",
		bytes.NewBufferString(`{"name": "小明", "department": "資工系", "date": "01/05"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created model.RegistrationModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "1/5", created.EventDate)
	require.NotZero(t, created.ID)

	// Update
	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/register/registrations/%d", created.ID),
		bytes.NewBufferString(`{"name": "小明", "department": "電機系", "date": "1/5"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	row, ok := regs.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "電機系", row.Department)

	// Delete
	resp, err = app.Test(httptest.NewRequest("DELETE",
		fmt.Sprintf("/api/register/registrations/%d", created.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, regs.List())
}

func TestUpdateMissingRegistrationFails(t *testing.T) {
	app, _, _ := newRegisterApp(t)

	req := httptest.NewRequest("PUT", "/api/register/registrations/999",
		bytes.NewBufferString(`{"name": "a", "department": "b", "date": "1/5"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
