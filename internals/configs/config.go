package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseConfigURL  string
	SupabaseServiceKey string
	SheetAPIURL        string
	ShopScriptURL      string
	DataDir            string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	SupabaseURL = GetEnv("SUPABASE_URL")
	SupabaseAnonKey = GetEnv("SUPABASE_ANON_KEY")
	SupabaseConfigURL = GetEnv("SUPABASE_CONFIG_URL")
	SupabaseServiceKey = GetEnv("SUPABASE_SERVICE_ROLE_KEY")
	SheetAPIURL = GetEnv("SHEET_API_URL")
	ShopScriptURL = GetEnv("SHOP_SCRIPT_URL", SheetAPIURL)
	DataDir = GetEnv("DATA_DIR", "data")

	if SupabaseURL == "" || SupabaseAnonKey == "" {
		log.Println("⚠️ SUPABASE_URL / SUPABASE_ANON_KEY belum diset — mode fallback lokal")
	} else {
		log.Println("✅ Konfigurasi Supabase berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// FeedPollInterval membaca FEED_POLL_MS (default 5000 ms) untuk polling change feed.
func FeedPollInterval() time.Duration {
	if v := GetEnv("FEED_POLL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 5 * time.Second
}
