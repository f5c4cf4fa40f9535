package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect membuka koneksi ke PostgreSQL (Supabase) dan mengembalikan handle-nya.
// Tidak ada singleton level paket: pemilik koneksi adalah pemanggil (selector),
// supaya lifecycle-nya jelas dan bisa di-test.
func Connect() (*gorm.DB, error) {
	log.Println("🔌 Koneksi ke PostgreSQL (Supabase)...")

	// ✅ Gunakan URL/DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer (mis. 6543) dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=mygame&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit Supabase/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUp(db *gorm.DB) {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
