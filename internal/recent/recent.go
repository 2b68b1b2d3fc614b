package recent

import (
	"log"
	"sync"

	"omnisearch/internal/storage"
)

// ItemsKey is the storage key holding the recent item ids
const ItemsKey = "recent-items"

// Store tracks the ids of recently executed items, most recent first.
// Re-adding an id moves it to the front; the list never exceeds max.
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	max     int
	ids     []string
}

// NewStore creates a recency store and loads any persisted ids from s.
// s may be nil for a store that is never persisted.
func NewStore(s storage.Storage, max int) *Store {
	r := &Store{storage: s, max: max}
	if s == nil {
		return r
	}

	var ids []string
	if _, err := storage.GetJSON(s, ItemsKey, &ids); err != nil {
		log.Printf("Failed to load recent items: %v", err)
	}
	r.ids = r.truncate(ids)
	return r
}

// Add moves id to the front of the list
func (r *Store) Add(id string) {
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = r.truncate(pushFront(r.ids, id))
	r.persist()
}

// IDs returns a copy of the recent ids, most recent first
func (r *Store) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

// Clear forgets every recent id
func (r *Store) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = nil
	if r.storage != nil {
		if err := r.storage.Remove(ItemsKey); err != nil {
			log.Printf("Failed to clear recent items: %v", err)
		}
	}
}

func (r *Store) truncate(ids []string) []string {
	if r.max > 0 && len(ids) > r.max {
		return ids[:r.max]
	}
	return ids
}

func (r *Store) persist() {
	if r.storage == nil {
		return
	}
	if err := storage.SetJSON(r.storage, ItemsKey, r.ids); err != nil {
		log.Printf("Failed to save recent items: %v", err)
	}
}

// pushFront returns list with v at the front and any other copy removed
func pushFront(list []string, v string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, v)
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
