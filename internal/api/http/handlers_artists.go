package apihttp

import (
	"net/http"
	"net/url"
)

func (s *Server) handleArtist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := pathSuffix(r, "/api/artist/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "artist id is required")
		return
	}
	if s.artists == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not available")
		return
	}

	artist, err := s.artists.ByID(r.Context(), id)
	if err != nil {
		writeCatalogError(w, err, "failed to fetch artist")
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleArtistByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := pathSuffix(r, "/api/artist-by-name/")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		writeError(w, http.StatusBadRequest, "artist name is required")
		return
	}
	if s.artists == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not available")
		return
	}

	artist, err := s.artists.ByName(r.Context(), name)
	if err != nil {
		writeCatalogError(w, err, "failed to fetch artist")
		return
	}
	writeJSON(w, http.StatusOK, artist)
}
