package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/vote/model"
	"mygame_backend/internals/syncstore"
)

func newVoteApp(t *testing.T) (*fiber.App, *syncstore.Store[model.VoteConfigModel]) {
	t.Helper()
	fb := fallback.New(t.TempDir())
	store := syncstore.New(syncstore.Config[model.VoteConfigModel]{
		Name:        "vote_config",
		KeyOf:       model.VoteConfigModel.Key,
		Seed:        func() []model.VoteConfigModel { return []model.VoteConfigModel{model.Default()} },
		FallbackKey: model.GamesKey,
	}, nil, fb)
	require.NoError(t, store.Load(context.Background()))

	ctrl := NewVoteController(store, fb)
	app := fiber.New()
	app.Get("/api/vote/config", ctrl.GetConfig)
	app.Put("/api/vote/config", ctrl.UpdateConfig)
	app.Get("/api/vote/votes", ctrl.GetVotes)
	app.Post("/api/vote/votes", ctrl.CastVote)
	return app, store
}

func TestGetConfigDefaults(t *testing.T) {
	app, _ := newVoteApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/vote/config", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data model.VoteConfigModel `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, model.DefaultGames, []string(body.Data.Games))
}

func TestUpdateConfigRequiresFourGames(t *testing.T) {
	app, _ := newVoteApp(t)

	req := httptest.NewRequest("PUT", "/api/vote/config",
		bytes.NewBufferString(`{"games": ["a", "b", "c"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateConfig(t *testing.T) {
	app, store := newVoteApp(t)

	req := httptest.NewRequest("PUT", "/api/vote/config",
		bytes.NewBufferString(`{"games": ["璀璨寶石", "印加寶藏", "卡坦島", "寶可夢卡牌"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	row, ok := store.Get("1")
	require.True(t, ok)
	assert.Equal(t, "卡坦島", row.Games[2])
}

func TestVoteTallies(t *testing.T) {
	app, _ := newVoteApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/vote/votes", nil))
	require.NoError(t, err)
	var body struct {
		Data [4]int `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, [4]int{}, body.Data)

	cast := func(payload string) int {
		req := httptest.NewRequest("POST", "/api/vote/votes", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		r, err := app.Test(req)
		require.NoError(t, err)
		return r.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, cast(`{"index": 2}`))
	assert.Equal(t, fiber.StatusOK, cast(`{"index": 2}`))
	assert.Equal(t, fiber.StatusOK, cast(`{"index": 0}`))
	assert.Equal(t, fiber.StatusBadRequest, cast(`{"index": 5}`))
	assert.Equal(t, fiber.StatusBadRequest, cast(`{}`))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/vote/votes", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, [4]int{1, 0, 2, 0}, body.Data)
}
