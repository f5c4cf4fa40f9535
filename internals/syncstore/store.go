package syncstore

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"mygame_backend/internals/fallback"
)

// State mesin keadaan per instans store.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateSyncedRemote
	StateSyncedFallback
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSyncedRemote:
		return "synced_remote"
	case StateSyncedFallback:
		return "synced_fallback"
	default:
		return "uninitialized"
	}
}

// Config mendeskripsikan satu domain data untuk Store generik.
type Config[T any] struct {
	// Name dipakai di log.
	Name string
	// KeyOf mengambil kunci natural sebuah baris (date_key, event_date, position, id).
	KeyOf func(T) string
	// Seed: baris default untuk singleton / grid tetap; nil kalau tidak ada.
	Seed func() []T
	// FallbackKey: kunci penyimpanan lokal (nama key localStorage dari web lama).
	FallbackKey string
}

// Store menjaga koleksi in-memory tetap konsisten dengan tabel remote:
// load awal, mutasi optimistik dengan write-through, reconciliation dari
// change feed (polling), dan jalur fallback lokal ketika remote tidak ada.
//
// Kebijakan tulis-gagal (diputuskan eksplisit, lihat DESIGN.md): perubahan
// optimistik TIDAK di-rollback; error diklasifikasi dan dikembalikan ke
// pemanggil untuk ditampilkan.
type Store[T any] struct {
	mu      sync.RWMutex
	cfg     Config[T]
	remote  Remote[T] // nil atau tidak dipakai saat fallback
	fb      *fallback.Store
	state   State
	rows    []T
	index   map[string]int
	loadErr error
	stop    func()
}

func New[T any](cfg Config[T], remote Remote[T], fb *fallback.Store) *Store[T] {
	return &Store[T]{cfg: cfg, remote: remote, fb: fb, index: map[string]int{}}
}

// Load menjalankan transisi Uninitialized → Loading → Synced(remote|fallback).
// Gagal baca remote menurunkan store ke fallback secara PERMANEN untuk sesi
// ini (tidak ada retry otomatis); error pertama disimpan untuk banner UI.
func (s *Store[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading

	if s.remote == nil {
		s.loadFallbackLocked()
		return nil
	}

	rows, err := s.remote.Load(ctx)
	if err != nil {
		s.loadErr = err
		log.Printf("❌ [%s] load remote gagal (%s), turun ke fallback: %v", s.cfg.Name, Classify(err), err)
		s.loadFallbackLocked()
		return fmt.Errorf("%s: %w", s.cfg.Name, err)
	}

	if len(rows) == 0 && s.cfg.Seed != nil {
		seed := s.cfg.Seed()
		// Insert-if-absent: dua load beruntun pada tabel kosong tetap
		// menghasilkan satu set baris, bukan dua.
		if err := s.remote.Insert(ctx, seed); err != nil {
			s.loadErr = err
			log.Printf("❌ [%s] seeding default gagal: %v", s.cfg.Name, err)
			s.loadFallbackLocked()
			return fmt.Errorf("%s seed: %w", s.cfg.Name, err)
		}
		if reloaded, err := s.remote.Load(ctx); err == nil {
			rows = reloaded
		} else {
			rows = seed
		}
	}

	s.setRowsLocked(rows)
	s.state = StateSyncedRemote
	log.Printf("✅ [%s] tersinkron dengan remote (%d baris)", s.cfg.Name, len(rows))
	return nil
}

func (s *Store[T]) loadFallbackLocked() {
	var rows []T
	if s.fb != nil && s.cfg.FallbackKey != "" {
		if _, err := s.fb.Get(s.cfg.FallbackKey, &rows); err != nil {
			log.Printf("⚠️ [%s] baca fallback gagal: %v", s.cfg.Name, err)
		}
	}
	if len(rows) == 0 && s.cfg.Seed != nil {
		rows = s.cfg.Seed()
	}
	s.setRowsLocked(rows)
	s.state = StateSyncedFallback
}

func (s *Store[T]) setRowsLocked(rows []T) {
	s.rows = rows
	s.index = make(map[string]int, len(rows))
	for i, r := range rows {
		s.index[s.cfg.KeyOf(r)] = i
	}
}

// State mengembalikan keadaan mesin saat ini.
func (s *Store[T]) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LoadError: error load remote pertama (untuk banner "sudah turun ke fallback").
func (s *Store[T]) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// All mengembalikan salinan seluruh baris sesuai urutan load.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.rows))
	copy(out, s.rows)
	return out
}

// Get mengambil baris berdasarkan kunci natural.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.index[key]; ok {
		return s.rows[i], true
	}
	var zero T
	return zero, false
}

// Len: jumlah baris saat ini.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Upsert menerapkan mutasi ke state lokal dulu (optimistik), lalu write-through
// ke remote dengan kunci natural. 0 rows affected = gagal (ErrNoRowsAffected),
// bukan sukses diam-diam. Di mode fallback hanya menulis ke store lokal.
func (s *Store[T]) Upsert(ctx context.Context, row T) error {
	s.mu.Lock()
	key := s.cfg.KeyOf(row)
	if i, ok := s.index[key]; ok {
		s.rows[i] = row
	} else {
		s.rows = append(s.rows, row)
		s.index[key] = len(s.rows) - 1
	}
	state := s.state
	s.mu.Unlock()

	if state == StateSyncedRemote {
		affected, err := s.remote.Upsert(ctx, row)
		if err != nil {
			return fmt.Errorf("%s upsert: %w", s.cfg.Name, err)
		}
		if affected == 0 {
			return fmt.Errorf("%s upsert: %w", s.cfg.Name, ErrNoRowsAffected)
		}
		return nil
	}
	return s.persistFallback()
}

// Delete menghapus baris lokal lalu remote; 0 rows affected juga gagal.
func (s *Store[T]) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	if i, ok := s.index[key]; ok {
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
		delete(s.index, key)
		for j := i; j < len(s.rows); j++ {
			s.index[s.cfg.KeyOf(s.rows[j])] = j
		}
	}
	state := s.state
	s.mu.Unlock()

	if state == StateSyncedRemote {
		affected, err := s.remote.Delete(ctx, key)
		if err != nil {
			return fmt.Errorf("%s delete: %w", s.cfg.Name, err)
		}
		if affected == 0 {
			return fmt.Errorf("%s delete: %w", s.cfg.Name, ErrNoRowsAffected)
		}
		return nil
	}
	return s.persistFallback()
}

func (s *Store[T]) persistFallback() error {
	if s.fb == nil || s.cfg.FallbackKey == "" {
		return nil
	}
	s.mu.RLock()
	rows := make([]T, len(s.rows))
	copy(rows, s.rows)
	s.mu.RUnlock()
	return s.fb.Set(s.cfg.FallbackKey, rows)
}

// Reconcile menarik ulang seluruh baris dari remote dan menggantikan state
// lokal (full reload sebagai pengganti merge halus; lihat kontrak §reconcile).
// Di mode fallback ini no-op.
func (s *Store[T]) Reconcile(ctx context.Context) error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if state != StateSyncedRemote {
		return nil
	}
	rows, err := s.remote.Load(ctx)
	if err != nil {
		log.Printf("⚠️ [%s] reconcile gagal: %v", s.cfg.Name, err)
		return err
	}
	s.mu.Lock()
	s.setRowsLocked(rows)
	s.mu.Unlock()
	return nil
}

// Watch memasang change feed polling (pengganti Realtime yang backend-agnostic).
// Hanya aktif di mode remote. Close menghentikannya.
func (s *Store[T]) Watch(interval time.Duration) {
	if s.State() != StateSyncedRemote {
		return
	}
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = Subscribe(s.cfg.Name, interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		_ = s.Reconcile(ctx)
	})
	s.mu.Unlock()
}

// Close melepas langganan feed; tidak ada perubahan state setelahnya.
func (s *Store[T]) Close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}
