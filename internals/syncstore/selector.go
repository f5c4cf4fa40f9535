package syncstore

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	database "mygame_backend/internals/databases"
)

// Capability adalah hasil keputusan backend selector: apakah backend remote
// bisa dipakai, dan kalau ya, handle hidupnya.
type Capability struct {
	OK      bool
	URL     string
	AnonKey string
	DB      *gorm.DB
}

// SelectorOptions: konfigurasi build-time (URL+AnonKey) atau, kalau kosong,
// endpoint konfigurasi runtime yang dipanggil PERSIS SEKALI per aktivasi.
type SelectorOptions struct {
	URL       string
	AnonKey   string
	ConfigURL string

	// Connect membuka handle DB; default ke database.Connect.
	Connect func() (*gorm.DB, error)
	// HTTPClient untuk fetch konfigurasi runtime; default client 10 detik.
	HTTPClient *http.Client
}

// Selector memutuskan sekali per aktivasi apakah backend remote tersedia.
// Tidak pernah melempar error keluar: kegagalan apa pun = "tidak terkonfigurasi",
// biar pemanggil turun ke fallback store.
type Selector struct {
	opt  SelectorOptions
	once sync.Once
	cap  Capability
}

func NewSelector(opt SelectorOptions) *Selector {
	if opt.Connect == nil {
		opt.Connect = database.Connect
	}
	if opt.HTTPClient == nil {
		opt.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Selector{opt: opt}
}

// Resolve mengembalikan Capability; pemanggilan berikutnya memakai hasil cache.
func (s *Selector) Resolve(ctx context.Context) Capability {
	s.once.Do(func() {
		s.cap = s.resolve(ctx)
	})
	return s.cap
}

type runtimeConfig struct {
	HasSupabase bool    `json:"hasSupabase"`
	URL         *string `json:"url"`
	AnonKey     *string `json:"anonKey"`
}

func (s *Selector) resolve(ctx context.Context) Capability {
	url, anonKey := s.opt.URL, s.opt.AnonKey

	// Konfigurasi build-time kosong → coba endpoint konfigurasi runtime, sekali.
	if (url == "" || anonKey == "") && s.opt.ConfigURL != "" {
		if cfg, ok := s.fetchConfig(ctx); ok && cfg.HasSupabase && cfg.URL != nil && cfg.AnonKey != nil {
			url, anonKey = *cfg.URL, *cfg.AnonKey
		}
	}

	if url == "" || anonKey == "" {
		log.Println("⚠️ Supabase tidak terkonfigurasi — semua store berjalan di fallback lokal")
		return Capability{OK: false}
	}

	db, err := s.opt.Connect()
	if err != nil {
		log.Printf("❌ Gagal konek backend remote, turun ke fallback: %v", err)
		return Capability{OK: false}
	}
	database.TunePool(db)
	database.WarmUp(db)
	return Capability{OK: true, URL: url, AnonKey: anonKey, DB: db}
}

func (s *Selector) fetchConfig(ctx context.Context) (runtimeConfig, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opt.ConfigURL, nil)
	if err != nil {
		return runtimeConfig{}, false
	}
	resp, err := s.opt.HTTPClient.Do(req)
	if err != nil {
		log.Printf("⚠️ Gagal fetch konfigurasi runtime: %v", err)
		return runtimeConfig{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return runtimeConfig{}, false
	}
	var cfg runtimeConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return runtimeConfig{}, false
	}
	return cfg, true
}
