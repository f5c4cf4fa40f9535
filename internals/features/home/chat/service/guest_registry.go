package service

import (
	"fmt"
	"log"
	"sync"

	"mygame_backend/internals/fallback"
	"mygame_backend/internals/features/home/chat/model"
)

// GuestRegistry menomori tamu per kunci klien (header X-Guest-Key atau IP).
// State-nya eksplisit dan dimiliki satu instans, bukan counter global proses;
// persist ke fallback store supaya nomor tidak di-reset antar restart.
type GuestRegistry struct {
	mu      sync.Mutex
	fb      *fallback.Store
	next    int
	clients map[string]model.GuestIdentity
}

type registrySnapshot struct {
	Next    int                            `json:"next"`
	Clients map[string]model.GuestIdentity `json:"clients"`
}

func NewGuestRegistry(fb *fallback.Store) *GuestRegistry {
	r := &GuestRegistry{fb: fb, next: 1, clients: map[string]model.GuestIdentity{}}
	if fb != nil {
		var snap registrySnapshot
		if ok, err := fb.Get(model.IdentityKey, &snap); err != nil {
			log.Printf("⚠️ [chat] baca identitas tamu gagal: %v", err)
		} else if ok {
			if snap.Next > 0 {
				r.next = snap.Next
			}
			if snap.Clients != nil {
				r.clients = snap.Clients
			}
		}
	}
	return r
}

// Identity mengembalikan identitas tamu untuk kunci klien; kunci yang sama
// selalu mendapat nomor yang sama (tidak ada penomoran ulang).
func (r *GuestRegistry) Identity(clientKey string) model.GuestIdentity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.clients[clientKey]; ok {
		return id
	}
	n := r.next
	r.next++
	id := model.GuestIdentity{
		Nickname: fmt.Sprintf("路人%d", n),
		Avatar:   fmt.Sprintf("%d", n),
	}
	r.clients[clientKey] = id
	r.persistLocked()
	return id
}

func (r *GuestRegistry) persistLocked() {
	if r.fb == nil {
		return
	}
	snap := registrySnapshot{Next: r.next, Clients: r.clients}
	if err := r.fb.Set(model.IdentityKey, snap); err != nil {
		log.Printf("⚠️ [chat] simpan identitas tamu gagal: %v", err)
	}
}
