package route

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"mygame_backend/internals/configs"
	"mygame_backend/internals/fallback"
	middlewares "mygame_backend/internals/middlewares"
	"mygame_backend/internals/syncstore"

	announcementController "mygame_backend/internals/features/home/announcement/controller"
	announcementModel "mygame_backend/internals/features/home/announcement/model"
	announcementRoute "mygame_backend/internals/features/home/announcement/route"

	chatController "mygame_backend/internals/features/home/chat/controller"
	chatRoute "mygame_backend/internals/features/home/chat/route"
	chatService "mygame_backend/internals/features/home/chat/service"

	calendarController "mygame_backend/internals/features/calendar/controller"
	calendarModel "mygame_backend/internals/features/calendar/model"
	calendarRoute "mygame_backend/internals/features/calendar/route"

	registerController "mygame_backend/internals/features/register/controller"
	registerModel "mygame_backend/internals/features/register/model"
	registerRoute "mygame_backend/internals/features/register/route"
	registerService "mygame_backend/internals/features/register/service"

	shopController "mygame_backend/internals/features/shop/controller"
	shopModel "mygame_backend/internals/features/shop/model"
	shopRoute "mygame_backend/internals/features/shop/route"

	sheetproxyController "mygame_backend/internals/features/sheetproxy/controller"
	sheetproxyRoute "mygame_backend/internals/features/sheetproxy/route"
	sheetproxyService "mygame_backend/internals/features/sheetproxy/service"

	voteController "mygame_backend/internals/features/vote/controller"
	voteModel "mygame_backend/internals/features/vote/model"
	voteRoute "mygame_backend/internals/features/vote/route"
)

// Deps: hasil resolusi selector + infrastruktur bersama.
type Deps struct {
	Capability   syncstore.Capability
	FB           *fallback.Store
	PollInterval time.Duration
}

type closer interface{ Close() }

// SetupRoutes membangun semua store domain, memuat state awalnya, memasang
// change feed, dan me-mount seluruh endpoint /api. Fungsi cleanup yang
// dikembalikan menghentikan semua feed saat shutdown.
func SetupRoutes(app *fiber.App, deps Deps) func() {
	configured := deps.Capability.OK && deps.Capability.DB != nil
	db := deps.Capability.DB

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var closers []closer

	// ================= Announcement =================
	var announcementRemote syncstore.Remote[announcementModel.AnnouncementModel]
	if configured {
		announcementRemote = syncstore.NewGormRemote[announcementModel.AnnouncementModel](db, syncstore.GormRemoteConfig{
			Table:         "announcements",
			KeyColumn:     "id",
			UpdateColumns: []string{"content", "updated_by", "updated_at"},
			OrderBy:       "id ASC",
		})
	}
	announcementStore := syncstore.New(syncstore.Config[announcementModel.AnnouncementModel]{
		Name:        "announcements",
		KeyOf:       announcementModel.AnnouncementModel.Key,
		Seed:        func() []announcementModel.AnnouncementModel { return []announcementModel.AnnouncementModel{announcementModel.Default()} },
		FallbackKey: "home_announcements_v1",
	}, announcementRemote, deps.FB)
	_ = announcementStore.Load(ctx)
	announcementStore.Watch(deps.PollInterval)
	closers = append(closers, announcementStore)

	// ================= Calendar =================
	var calendarRemote syncstore.Remote[calendarModel.CalendarNoteModel]
	if configured {
		calendarRemote = syncstore.NewGormRemote[calendarModel.CalendarNoteModel](db, syncstore.GormRemoteConfig{
			Table:         "calendar_notes",
			KeyColumn:     "date_key",
			UpdateColumns: []string{"note_text", "user_id", "updated_at"},
			OrderBy:       "date_key ASC",
		})
	}
	calendarStore := syncstore.New(syncstore.Config[calendarModel.CalendarNoteModel]{
		Name:        "calendar_notes",
		KeyOf:       func(n calendarModel.CalendarNoteModel) string { return n.DateKey },
		FallbackKey: "calendar_notes_v1",
	}, calendarRemote, deps.FB)
	_ = calendarStore.Load(ctx)
	calendarStore.Watch(deps.PollInterval)
	closers = append(closers, calendarStore)

	// ================= Shop =================
	var shopRemote syncstore.Remote[shopModel.ShopItemModel]
	if configured {
		shopRemote = syncstore.NewGormRemote[shopModel.ShopItemModel](db, syncstore.GormRemoteConfig{
			Table:         "shop_items",
			KeyColumn:     "position",
			UpdateColumns: []string{"item_name", "image_url", "updated_at"},
			OrderBy:       "position ASC",
		})
	}
	shopStore := syncstore.New(syncstore.Config[shopModel.ShopItemModel]{
		Name:        "shop_items",
		KeyOf:       shopModel.ShopItemModel.Key,
		Seed:        shopModel.SeedItems,
		FallbackKey: shopModel.FallbackKey,
	}, shopRemote, deps.FB)
	_ = shopStore.Load(ctx)
	shopStore.Watch(deps.PollInterval)
	closers = append(closers, shopStore)

	// ================= Vote =================
	var voteRemote syncstore.Remote[voteModel.VoteConfigModel]
	if configured {
		voteRemote = syncstore.NewGormRemote[voteModel.VoteConfigModel](db, syncstore.GormRemoteConfig{
			Table:         "vote_config",
			KeyColumn:     "id",
			UpdateColumns: []string{"games", "updated_at"},
			OrderBy:       "id ASC",
		})
	}
	voteStore := syncstore.New(syncstore.Config[voteModel.VoteConfigModel]{
		Name:        "vote_config",
		KeyOf:       voteModel.VoteConfigModel.Key,
		Seed:        func() []voteModel.VoteConfigModel { return []voteModel.VoteConfigModel{voteModel.Default()} },
		FallbackKey: voteModel.GamesKey,
	}, voteRemote, deps.FB)
	_ = voteStore.Load(ctx)
	voteStore.Watch(deps.PollInterval)
	closers = append(closers, voteStore)

	// ================= Register =================
	var dateRemote syncstore.Remote[registerModel.EventDateModel]
	if configured {
		dateRemote = syncstore.NewGormRemote[registerModel.EventDateModel](db, syncstore.GormRemoteConfig{
			Table:         "event_dates",
			KeyColumn:     "event_date",
			UpdateColumns: []string{"image_url", "display_order"},
			OrderBy:       "display_order ASC",
		})
	}
	dateStore := syncstore.New(syncstore.Config[registerModel.EventDateModel]{
		Name:        "event_dates",
		KeyOf:       registerModel.EventDateModel.Key,
		Seed:        registerModel.DefaultCards,
		FallbackKey: registerModel.DatesFallbackKey,
	}, dateRemote, deps.FB)
	_ = dateStore.Load(ctx)
	dateStore.Watch(deps.PollInterval)
	closers = append(closers, dateStore)

	sheetClient := sheetproxyService.NewClient(configs.SheetAPIURL, configs.ShopScriptURL)

	var regService *registerService.RegistrationService
	if configured {
		resolver := syncstore.NewTableResolver(
			syncstore.NewGormProber(db),
			[]string{"registrations", "register"},
			[]string{"event_date", "date"},
			"id",
		)
		regService = registerService.NewRegistrationService(db, resolver, deps.FB)
	} else {
		regService = registerService.NewRegistrationService(nil, nil, deps.FB)
	}
	regService.OnFallbackCreate = func(row registerModel.RegistrationModel) {
		if err := sheetClient.ForwardRegistration(fiber.Map{
			"date": row.EventDate, "name": row.Name, "department": row.Department,
		}); err != nil {
			log.Printf("⚠️ [registrations] %v", err)
		}
	}
	_ = regService.Load(ctx)
	regService.Watch(deps.PollInterval)
	closers = append(closers, regService)

	// ================= Mount /api =================
	api := app.Group("/api")

	// Limiter khusus tulis: hanya method mutasi yang kena, GET tetap
	// memakai limiter global. Juga berperan sebagai in-flight guard
	// (kontrak: tidak ada retry otomatis, user yang mengulang manual).
	writeLimiter := middlewares.WriteRateLimiter()
	api.Use(func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
			return writeLimiter(c)
		}
		return c.Next()
	})

	announcementRoute.AnnouncementRoutes(api, announcementController.NewAnnouncementController(announcementStore, configured))
	chatRoute.ChatRoutes(api, chatController.NewChatController(deps.FB, chatService.NewGuestRegistry(deps.FB)))
	calendarRoute.CalendarRoutes(api, calendarController.NewCalendarController(calendarStore))
	registerRoute.RegisterRoutes(api, registerController.NewRegisterController(dateStore, regService))
	shopRoute.ShopRoutes(api, shopController.NewShopController(shopStore))
	voteRoute.VoteRoutes(api, voteController.NewVoteController(voteStore, deps.FB))
	sheetproxyRoute.SheetProxyRoutes(api, sheetproxyController.NewSheetProxyController(sheetClient))

	api.Get("/supabase-config", supabaseConfigHandler(deps.Capability))

	log.Println("[INFO] Semua route /api berhasil dipasang")

	return func() {
		for _, cl := range closers {
			cl.Close()
		}
	}
}

// supabaseConfigHandler: kredensial publik untuk klien lama yang masih
// memilih backend sendiri. Tidak boleh di-cache.
func supabaseConfigHandler(cap syncstore.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store")
		var url, anonKey *string
		if cap.OK {
			url, anonKey = &cap.URL, &cap.AnonKey
		}
		return c.JSON(fiber.Map{
			"hasSupabase": cap.OK,
			"url":         url,
			"anonKey":     anonKey,
		})
	}
}
