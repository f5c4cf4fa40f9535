package syncstore

import (
	"log"
	"sync"
	"time"
)

// Subscribe membuka change feed polling untuk satu tabel: onChange dipanggil
// tiap interval sampai fungsi stop yang dikembalikan dipanggil. Ini pengganti
// langganan realtime per-baris; konsumen diharapkan melakukan full reload,
// jadi tidak ada payload event.
func Subscribe(name string, interval time.Duration, onChange func()) (stop func()) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				onChange()
			}
		}
	}()
	log.Printf("🔌 [%s] change feed aktif (interval %s)", name, interval)
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
