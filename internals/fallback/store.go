package fallback

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Store adalah jalur persistensi lokal (pengganti localStorage di web lama):
// satu file JSON per key di bawah satu direktori data. Dipakai ketika backend
// remote tidak dikonfigurasi atau gagal dimuat.
//
// Key yang tidak ada diperlakukan sebagai "belum ada data", bukan error.
type Store struct {
	mu  sync.Mutex
	dir string
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9._\-]+`)

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(key string) string {
	safe := keySanitizer.ReplaceAllString(key, "_")
	return filepath.Join(s.dir, safe+".json")
}

// Get membaca value untuk key ke out. Mengembalikan (false, nil) kalau belum ada.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("gagal membaca %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("gagal parse %s: %w", key, err)
	}
	return true, nil
}

// Set menulis value untuk key (overwrite penuh).
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(key, value)
}

func (s *Store) write(key string, value interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("gagal membuat direktori data: %w", err)
	}
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("gagal encode %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("gagal menulis %s: %w", key, err)
	}
	return nil
}

// Remove menghapus key. Key yang tidak ada bukan error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// AppendCapped menambahkan entry ke log append-only di bawah key, dengan batas
// maksimum entri: yang paling lama dibuang dulu (paling banyak `cap` tersisa).
func (s *Store) AppendCapped(key string, entry json.RawMessage, max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []json.RawMessage
	raw, err := os.ReadFile(s.path(key))
	if err == nil {
		// File rusak dianggap log kosong, jangan bikin append gagal permanen.
		_ = json.Unmarshal(raw, &entries)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("gagal membaca %s: %w", key, err)
	}

	entries = append(entries, entry)
	if max > 0 && len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	return s.write(key, entries)
}

// ReadLog membaca seluruh isi log append-only di bawah key.
func (s *Store) ReadLog(key string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if _, err := s.Get(key, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
