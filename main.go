package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"mygame_backend/internals/configs"
	"mygame_backend/internals/fallback"
	middlewares "mygame_backend/internals/middlewares"
	routes "mygame_backend/internals/route"
	"mygame_backend/internals/syncstore"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             8 * 1024 * 1024, // unggahan gambar toko
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 Pilih backend: remote Supabase atau fallback lokal.
	// Satu kali per proses; gagal di titik mana pun = mode fallback.
	selector := syncstore.NewSelector(syncstore.SelectorOptions{
		URL:       configs.SupabaseURL,
		AnonKey:   configs.SupabaseAnonKey,
		ConfigURL: configs.SupabaseConfigURL,
	})
	resolveCtx, cancelResolve := context.WithTimeout(context.Background(), 15*time.Second)
	capability := selector.Resolve(resolveCtx)
	cancelResolve()

	fb := fallback.New(configs.DataDir)

	// ❤️ Health check (anti-cold start)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ✅ Routes + store domain
	cleanup := routes.SetupRoutes(app, routes.Deps{
		Capability:   capability,
		FB:           fb,
		PollInterval: configs.FeedPollInterval(),
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: hentikan feed, tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	cleanup()
	if capability.DB != nil {
		if sqlDB, err := capability.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
