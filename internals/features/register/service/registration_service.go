package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/register/model"
	"mygame_backend/internals/syncstore"
)

// RegistrationService: penyimpanan tersinkron untuk pendaftaran. Tidak
// memakai Store generik karena semua akses remote harus lewat target hasil
// resolver (tabel registrations/register, kolom event_date/date) dan id
// diberikan oleh sequence di server.
type RegistrationService struct {
	mu       sync.RWMutex
	db       *gorm.DB
	resolver *syncstore.TableResolver
	fb       *fallback.Store

	state   syncstore.State
	rows    []model.RegistrationModel
	loadErr error
	target  syncstore.Target
	stop    func()

	// Dipanggil saat create di mode fallback (penerusan ke sheet proxy).
	OnFallbackCreate func(model.RegistrationModel)
}

func NewRegistrationService(db *gorm.DB, resolver *syncstore.TableResolver, fb *fallback.Store) *RegistrationService {
	return &RegistrationService{db: db, resolver: resolver, fb: fb}
}

func (s *RegistrationService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = syncstore.StateLoading

	if s.db == nil {
		s.loadFallbackLocked()
		return nil
	}

	target, err := s.resolver.Resolve(ctx)
	if err != nil {
		s.loadErr = err
		log.Printf("❌ [registrations] resolusi skema gagal, turun ke fallback: %v", err)
		s.loadFallbackLocked()
		return err
	}
	s.target = target

	rows, err := s.loadRemote(ctx)
	if err != nil {
		s.loadErr = err
		log.Printf("❌ [registrations] load remote gagal (%s), turun ke fallback: %v", syncstore.Classify(err), err)
		s.loadFallbackLocked()
		return err
	}
	s.rows = rows
	s.state = syncstore.StateSyncedRemote
	log.Printf("✅ [registrations] tersinkron dengan %s.%s (%d baris)", target.Table, target.Column, len(rows))
	return nil
}

func (s *RegistrationService) loadRemote(ctx context.Context) ([]model.RegistrationModel, error) {
	var rows []model.RegistrationModel
	err := s.db.WithContext(ctx).
		Table(s.target.Table).
		Select(fmt.Sprintf("id, name, department, %s AS event_date, created_at", s.target.Column)).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *RegistrationService) loadFallbackLocked() {
	var rows []model.RegistrationModel
	if s.fb != nil {
		if _, err := s.fb.Get(model.DetailsFallbackKey, &rows); err != nil {
			log.Printf("⚠️ [registrations] baca fallback gagal: %v", err)
		}
	}
	s.rows = rows
	s.state = syncstore.StateSyncedFallback
}

func (s *RegistrationService) persistFallback() {
	if s.fb == nil {
		return
	}
	s.mu.RLock()
	rows := make([]model.RegistrationModel, len(s.rows))
	copy(rows, s.rows)
	s.mu.RUnlock()
	if err := s.fb.Set(model.DetailsFallbackKey, rows); err != nil {
		log.Printf("⚠️ [registrations] simpan fallback gagal: %v", err)
	}
}

func (s *RegistrationService) State() syncstore.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *RegistrationService) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// List: seluruh pendaftaran urut created_at.
func (s *RegistrationService) List() []model.RegistrationModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RegistrationModel, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *RegistrationService) Get(id int64) (model.RegistrationModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if r.ID == id {
			return r, true
		}
	}
	return model.RegistrationModel{}, false
}

// Create menambah pendaftaran baru. Mode remote: INSERT dengan id dari
// sequence. Mode fallback: id dari jam lokal, lalu diteruskan ke sheet proxy.
func (s *RegistrationService) Create(ctx context.Context, name, department, eventDate string) (model.RegistrationModel, error) {
	if s.State() == syncstore.StateSyncedRemote {
		var out struct {
			ID        int64     `gorm:"column:id"`
			CreatedAt time.Time `gorm:"column:created_at"`
		}
		q := fmt.Sprintf("INSERT INTO %s (name, department, %s) VALUES (?, ?, ?) RETURNING id, created_at",
			s.target.Table, s.target.Column)
		if err := s.db.WithContext(ctx).Raw(q, name, department, eventDate).Scan(&out).Error; err != nil {
			return model.RegistrationModel{}, fmt.Errorf("registrations insert: %w", err)
		}
		row := model.RegistrationModel{
			ID: out.ID, Name: name, Department: department,
			EventDate: eventDate, CreatedAt: out.CreatedAt,
		}
		s.mu.Lock()
		s.rows = append(s.rows, row)
		s.mu.Unlock()
		return row, nil
	}

	row := model.RegistrationModel{
		ID: time.Now().UnixMilli(), Name: name, Department: department,
		EventDate: eventDate, CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.rows = append(s.rows, row)
	s.mu.Unlock()
	s.persistFallback()
	if s.OnFallbackCreate != nil {
		go s.OnFallbackCreate(row)
	}
	return row, nil
}

// Update mengubah satu pendaftaran. Perubahan lokal diterapkan lebih dulu
// dan tetap ada walau tulis remote gagal; 0 rows affected = gagal.
func (s *RegistrationService) Update(ctx context.Context, id int64, name, department, eventDate string) (model.RegistrationModel, error) {
	s.mu.Lock()
	var updated model.RegistrationModel
	found := false
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Name = name
			s.rows[i].Department = department
			s.rows[i].EventDate = eventDate
			updated = s.rows[i]
			found = true
			break
		}
	}
	state := s.state
	s.mu.Unlock()

	if !found {
		return model.RegistrationModel{}, syncstore.ErrNoRowsAffected
	}

	if state == syncstore.StateSyncedRemote {
		res := s.db.WithContext(ctx).Table(s.target.Table).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"name": name, "department": department, s.target.Column: eventDate,
			})
		if res.Error != nil {
			return updated, fmt.Errorf("registrations update: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return updated, fmt.Errorf("registrations update: %w", syncstore.ErrNoRowsAffected)
		}
		return updated, nil
	}
	s.persistFallback()
	return updated, nil
}

// Delete menghapus satu pendaftaran; 0 rows affected = gagal.
func (s *RegistrationService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
	state := s.state
	s.mu.Unlock()

	if state == syncstore.StateSyncedRemote {
		res := s.db.WithContext(ctx).Table(s.target.Table).
			Where("id = ?", id).
			Delete(&model.RegistrationModel{})
		if res.Error != nil {
			return fmt.Errorf("registrations delete: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("registrations delete: %w", syncstore.ErrNoRowsAffected)
		}
		return nil
	}
	s.persistFallback()
	return nil
}

// RenameEventDate memindahkan pendaftaran dari tanggal lama ke tanggal baru
// setelah kartu tanggal di-edit. Tidak ada pendaftaran untuk tanggal lama
// bukan error. Panggilan ini independen dari upsert kartunya (tanpa rollback).
func (s *RegistrationService) RenameEventDate(ctx context.Context, oldKey, newKey string) error {
	if oldKey == newKey {
		return nil
	}
	s.mu.Lock()
	for i := range s.rows {
		if s.rows[i].EventDate == oldKey {
			s.rows[i].EventDate = newKey
		}
	}
	state := s.state
	s.mu.Unlock()

	if state == syncstore.StateSyncedRemote {
		res := s.db.WithContext(ctx).Table(s.target.Table).
			Where(s.target.Column+" = ?", oldKey).
			Update(s.target.Column, newKey)
		if res.Error != nil {
			return fmt.Errorf("registrations rename: %w", res.Error)
		}
		return nil
	}
	s.persistFallback()
	return nil
}

// Reconcile menarik ulang seluruh pendaftaran (dipanggil change feed).
func (s *RegistrationService) Reconcile(ctx context.Context) error {
	if s.State() != syncstore.StateSyncedRemote {
		return nil
	}
	rows, err := s.loadRemote(ctx)
	if err != nil {
		log.Printf("⚠️ [registrations] reconcile gagal: %v", err)
		return err
	}
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
	return nil
}

func (s *RegistrationService) Watch(interval time.Duration) {
	if s.State() != syncstore.StateSyncedRemote {
		return
	}
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	s.stop = syncstore.Subscribe("registrations", interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		_ = s.Reconcile(ctx)
	})
	s.mu.Unlock()
}

func (s *RegistrationService) Close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}
