package apihttp

import (
	"net/http"

	"musicstream/internal/domain"
)

func (s *Server) handleLyrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := pathSuffix(r, "/api/lyrics/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}
	if s.search == nil || s.lyrics == nil {
		writeError(w, http.StatusServiceUnavailable, "lyrics not available")
		return
	}

	track, err := s.findTrack(r, domain.TrackID(id))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, domain.LyricsResult{
			Lyrics: "Something went wrong while fetching the lyrics. Please try again later.",
			Source: "error",
			Err:    err.Error(),
		})
		return
	}
	if track == nil {
		writeJSON(w, http.StatusNotFound, domain.LyricsResult{
			Lyrics: "Track not found",
			Source: "error",
			Err:    "TRACK_NOT_FOUND",
		})
		return
	}
	if track.Name == "" || len(track.Artists) == 0 {
		writeJSON(w, http.StatusBadRequest, domain.LyricsResult{
			Lyrics: "Not enough data to look up the lyrics",
			Source: "error",
			Err:    "INVALID_TRACK_DATA",
		})
		return
	}

	result, err := s.lyrics.Fetch(r.Context(), track.Name, track.Artists[0].Name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, domain.LyricsResult{
			Lyrics: "Something went wrong while fetching the lyrics. Please try again later.",
			Source: "error",
			Err:    err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
