package syncstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoRowsAffected: operasi update/delete "sukses" tapi 0 baris kena.
// Hampir selalu berarti RLS menyaring baris, atau barisnya sudah hilang.
// Tidak boleh diperlakukan sebagai sukses diam-diam.
var ErrNoRowsAffected = errors.New("操作沒有影響任何資料（0 rows affected）")

// Remote adalah permukaan minimal tabel remote yang dibutuhkan Store.
// Implementasi utama berbasis GORM; registrasi punya implementasi sendiri
// yang sadar hasil resolver tabel/kolom. Test memakai fake in-memory.
type Remote[T any] interface {
	// Load membaca semua baris, terurut kunci stabil.
	Load(ctx context.Context) ([]T, error)
	// Insert menulis baris seed (insert-if-absent untuk singleton/grid tetap).
	Insert(ctx context.Context, rows []T) error
	// Upsert menulis satu baris dengan kunci naturalnya; mengembalikan rows affected.
	Upsert(ctx context.Context, row T) (int64, error)
	// Delete menghapus berdasarkan kunci natural; mengembalikan rows affected.
	Delete(ctx context.Context, key string) (int64, error)
}

// GormRemoteConfig memetakan tipe baris ke tabel remote-nya.
type GormRemoteConfig struct {
	Table string
	// KeyColumn: kolom kunci natural (dipakai upsert conflict + delete).
	KeyColumn string
	// UpdateColumns: kolom yang di-assign saat konflik upsert.
	UpdateColumns []string
	// OrderBy: urutan stabil saat load, mis. "created_at ASC".
	OrderBy string
}

type GormRemote[T any] struct {
	db  *gorm.DB
	cfg GormRemoteConfig
}

func NewGormRemote[T any](db *gorm.DB, cfg GormRemoteConfig) *GormRemote[T] {
	return &GormRemote[T]{db: db, cfg: cfg}
}

func (r *GormRemote[T]) Load(ctx context.Context) ([]T, error) {
	var rows []T
	tx := r.db.WithContext(ctx).Table(r.cfg.Table)
	if r.cfg.OrderBy != "" {
		tx = tx.Order(r.cfg.OrderBy)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRemote[T]) Insert(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	// DoNothing supaya seeding idempoten: dua pembaca pertama yang balapan
	// tidak menghasilkan baris ganda.
	return r.db.WithContext(ctx).Table(r.cfg.Table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: r.cfg.KeyColumn}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *GormRemote[T]) Upsert(ctx context.Context, row T) (int64, error) {
	res := r.db.WithContext(ctx).Table(r.cfg.Table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: r.cfg.KeyColumn}},
			DoUpdates: clause.AssignmentColumns(r.cfg.UpdateColumns),
		}).
		Create(&row)
	return res.RowsAffected, res.Error
}

func (r *GormRemote[T]) Delete(ctx context.Context, key string) (int64, error) {
	var t T
	res := r.db.WithContext(ctx).Table(r.cfg.Table).
		Where(r.cfg.KeyColumn+" = ?", key).
		Delete(&t)
	return res.RowsAffected, res.Error
}
