// Package memory provides in-process storage backends.
package memory

import (
	"sort"
	"sync"

	"musicstream/internal/domain"
)

// FavoritesStore keeps the favorites set in process memory. Contents
// do not survive a restart.
type FavoritesStore struct {
	mu  sync.RWMutex
	ids map[domain.TrackID]struct{}
}

func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{ids: make(map[domain.TrackID]struct{})}
}

func (s *FavoritesStore) Add(id domain.TrackID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

func (s *FavoritesStore) Remove(id domain.TrackID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *FavoritesStore) Contains(id domain.TrackID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// List returns the stored ids in a stable order.
func (s *FavoritesStore) List() []domain.TrackID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]domain.TrackID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
