package ports

import "musicstream/internal/domain"

// FavoritesStore is a process-lifetime set of bookmarked track ids.
// No durability is required or provided.
type FavoritesStore interface {
	Add(id domain.TrackID)
	Remove(id domain.TrackID)
	Contains(id domain.TrackID) bool
	List() []domain.TrackID
}
