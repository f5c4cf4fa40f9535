package syncstore

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"
)

// Prober mengecek apakah pasangan (tabel, kolom) bisa di-SELECT. Dipisah ke
// interface supaya resolver bisa diuji tanpa database.
type Prober interface {
	Probe(ctx context.Context, table, column string) error
}

type gormProber struct{ db *gorm.DB }

func NewGormProber(db *gorm.DB) Prober { return gormProber{db: db} }

func (p gormProber) Probe(ctx context.Context, table, column string) error {
	var rows []map[string]interface{}
	return p.db.WithContext(ctx).Table(table).Select(column).Limit(1).Find(&rows).Error
}

// Target: hasil resolusi skema yang dipakai semua query berikutnya.
type Target struct {
	Table  string
	Column string
}

// TableResolver menangani deployment lama yang tabel/kolomnya belum di-rename
// (registrations vs register, event_date vs date). Probing dilakukan SEKALI
// per proses; hasil maupun kegagalannya di-cache permanen.
type TableResolver struct {
	once    sync.Once
	prober  Prober
	tables  []string
	columns []string
	probe   string // kolom murah untuk probing tabel, biasanya "id"

	target Target
	err    error
}

func NewTableResolver(p Prober, tables, columns []string, probeColumn string) *TableResolver {
	if probeColumn == "" {
		probeColumn = "id"
	}
	return &TableResolver{prober: p, tables: tables, columns: columns, probe: probeColumn}
}

// Resolve mencoba kandidat tabel berurutan, lalu kandidat kolom pada tabel
// yang ketemu. Error permission/auth menghentikan pencarian: tabelnya ADA
// tapi diblok, jangan diperlakukan seolah belum dibuat.
func (r *TableResolver) Resolve(ctx context.Context) (Target, error) {
	r.once.Do(func() {
		r.target, r.err = r.resolve(ctx)
		if r.err != nil {
			log.Printf("❌ [resolver] resolusi skema gagal: %v", r.err)
		} else {
			log.Printf("✅ [resolver] memakai %s.%s", r.target.Table, r.target.Column)
		}
	})
	return r.target, r.err
}

func (r *TableResolver) resolve(ctx context.Context) (Target, error) {
	var table string
	var lastErr error
	for _, t := range r.tables {
		err := r.prober.Probe(ctx, t, r.probe)
		if err == nil {
			table = t
			break
		}
		switch Classify(err) {
		case KindPermission, KindAuthConfig:
			return Target{}, fmt.Errorf("tabel %s terblok: %w", t, err)
		}
		lastErr = err
	}
	if table == "" {
		if lastErr == nil {
			lastErr = fmt.Errorf("tidak ada kandidat tabel")
		}
		return Target{}, fmt.Errorf("tidak menemukan tabel dari %v: %w", r.tables, lastErr)
	}

	for _, c := range r.columns {
		err := r.prober.Probe(ctx, table, c)
		if err == nil {
			return Target{Table: table, Column: c}, nil
		}
		switch Classify(err) {
		case KindPermission, KindAuthConfig:
			return Target{}, fmt.Errorf("kolom %s.%s terblok: %w", table, c, err)
		}
		lastErr = err
	}
	return Target{}, fmt.Errorf("tidak menemukan kolom dari %v di %s: %w", r.columns, table, lastErr)
}
