package apihttp

import (
	"log/slog"
	"net/http"

	"musicstream/internal/domain"
)

type favoriteStatusResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type favoriteChangeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.favorites == nil || s.search == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites not available")
		return
	}

	// Stored ids are re-resolved against the catalog on every read;
	// tracks that no longer resolve are silently dropped.
	tracks := make([]domain.Track, 0)
	for _, id := range s.favorites.List() {
		track, err := s.findTrack(r, id)
		if err != nil || track == nil {
			if err != nil {
				s.logger.Warn("favorite track lookup failed",
					slog.String("track_id", string(id)),
					slog.String("error", err.Error()))
			}
			continue
		}
		tracks = append(tracks, *track)
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleFavoriteByID(w http.ResponseWriter, r *http.Request) {
	id := pathSuffix(r, "/api/favorites/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}
	if s.favorites == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites not available")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, favoriteStatusResponse{IsFavorite: s.favorites.Contains(domain.TrackID(id))})
	case http.MethodPost:
		s.addFavorite(w, r, domain.TrackID(id))
	case http.MethodDelete:
		s.favorites.Remove(domain.TrackID(id))
		writeJSON(w, http.StatusOK, favoriteChangeResponse{Success: true, Message: "track removed from favorites"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// addFavorite verifies the track exists in the catalog before storing
// its id, so the favorites list never accumulates dead entries.
func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request, id domain.TrackID) {
	if s.search == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites not available")
		return
	}
	track, err := s.findTrack(r, id)
	if err != nil {
		writeCatalogError(w, err, "failed to add favorite")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "track not found")
		return
	}
	s.favorites.Add(id)
	writeJSON(w, http.StatusOK, favoriteChangeResponse{Success: true, Message: "track added to favorites"})
}
