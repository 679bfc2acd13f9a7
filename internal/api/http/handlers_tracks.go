package apihttp

import (
	"net/http"
	"strings"

	"musicstream/internal/domain"
)

const recommendationsQuery = "top hits"
const recommendationsLimit = 20

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.search == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not available")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		query = strings.TrimSpace(r.URL.Query().Get("q"))
	}
	if query == "" {
		writeError(w, http.StatusBadRequest, "search query is required")
		return
	}

	tracks, err := s.search.Execute(r.Context(), query, 0)
	if err != nil {
		writeCatalogError(w, err, "search failed")
		return
	}
	if tracks == nil {
		tracks = []domain.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := pathSuffix(r, "/api/track/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}
	if s.search == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not available")
		return
	}

	track, err := s.findTrack(r, domain.TrackID(id))
	if err != nil {
		writeCatalogError(w, err, "failed to fetch track")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "track not found")
		return
	}
	writeJSON(w, http.StatusOK, track)
}

// findTrack locates a track's catalog entry by searching for its id
// and matching the result list. The platform has no direct
// track-by-id catalog lookup.
func (s *Server) findTrack(r *http.Request, id domain.TrackID) (*domain.Track, error) {
	tracks, err := s.search.Execute(r.Context(), string(id), 0)
	if err != nil {
		return nil, err
	}
	for i := range tracks {
		if tracks[i].ID == id {
			return &tracks[i], nil
		}
	}
	return nil, nil
}

type readyResponse struct {
	Ready bool `json:"ready"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := pathSuffix(r, "/api/check/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}
	if s.preparer == nil {
		writeError(w, http.StatusServiceUnavailable, "playback not available")
		return
	}

	info, err := s.preparer.Prepare(r.Context(), domain.TrackID(id))
	if err != nil {
		writeJSON(w, http.StatusOK, readyResponse{Ready: false})
		return
	}
	s.wsHub.BroadcastTrackReady(domain.TrackID(id), info)
	writeJSON(w, http.StatusOK, readyResponse{Ready: true})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.search == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not available")
		return
	}

	tracks, err := s.search.Execute(r.Context(), recommendationsQuery, recommendationsLimit)
	if err != nil {
		writeCatalogError(w, err, "failed to fetch recommendations")
		return
	}
	if len(tracks) == 0 {
		writeError(w, http.StatusInternalServerError, "failed to fetch recommendations")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}
