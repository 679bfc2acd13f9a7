package apihttp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"musicstream/internal/domain"
	"musicstream/internal/metrics"
)

const (
	defaultAudioContentType = "audio/mpeg"
	relayBufferSize         = 1 << 20

	streamKindFull  = "full"
	streamKindRange = "range"
)

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := domain.TrackID(pathSuffix(r, "/api/play/"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}
	if s.preparer == nil || s.streamer == nil {
		writeError(w, http.StatusServiceUnavailable, "playback not available")
		return
	}

	info, err := s.preparer.Prepare(r.Context(), id)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "failed to prepare track", err.Error())
		return
	}
	s.wsHub.BroadcastTrackReady(id, info)

	setAudioHeaders(w, info)

	if r.Method == http.MethodHead {
		if info.ContentLength > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.ContentLength, 10))
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	// Range handling needs a known size. When upstream did not report
	// one, the range offer is withheld (no Accept-Ranges) and a Range
	// request falls back to a full-body 200.
	rangeHeader := r.Header.Get("Range")
	if rangeHeader == "" || info.ContentLength <= 0 {
		s.relayFull(w, r, id, info)
		return
	}
	s.relayRange(w, r, id, info, rangeHeader)
}

func setAudioHeaders(w http.ResponseWriter, info domain.TrackInfo) {
	contentType := info.Format.MimeType
	if contentType == "" {
		contentType = defaultAudioContentType
	}
	duration := strconv.FormatInt(info.LengthSeconds, 10)

	w.Header().Set("Content-Type", contentType)
	if info.ContentLength > 0 {
		w.Header().Set("Accept-Ranges", "bytes")
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Header().Set("X-Content-Duration", duration)
	w.Header().Set("Content-Duration", duration)
}

func (s *Server) relayFull(w http.ResponseWriter, r *http.Request, id domain.TrackID, info domain.TrackInfo) {
	reader, err := s.streamer.Execute(r.Context(), info, nil)
	if err != nil {
		metrics.StreamFailuresTotal.Inc()
		writeErrorDetails(w, http.StatusInternalServerError, "failed to open audio stream", err.Error())
		return
	}
	defer reader.Close()

	if info.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)
	s.relay(w, r, reader, id, streamKindFull, info.ContentLength)
}

func (s *Server) relayRange(w http.ResponseWriter, r *http.Request, id domain.TrackID, info domain.TrackInfo, rangeHeader string) {
	rng, err := parseByteRange(rangeHeader, info.ContentLength)
	if err != nil {
		if errors.Is(err, errRangeNotSatisfiable) {
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", info.ContentLength))
			writeError(w, http.StatusRequestedRangeNotSatisfiable, "range not satisfiable")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid range")
		return
	}

	reader, err := s.streamer.Execute(r.Context(), info, &rng)
	if err != nil {
		metrics.StreamFailuresTotal.Inc()
		writeErrorDetails(w, http.StatusInternalServerError, "failed to open audio stream", err.Error())
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, info.ContentLength))
	w.Header().Set("Content-Length", strconv.FormatInt(rng.Length(), 10))
	w.WriteHeader(http.StatusPartialContent)
	s.relay(w, r, reader, id, streamKindRange, rng.Length())
}

// relay copies the upstream audio bytes to the client, accounting for
// metrics and completion notifications. The response status and
// headers are already written by the time it runs.
func (s *Server) relay(w http.ResponseWriter, r *http.Request, reader io.Reader, id domain.TrackID, kind string, want int64) {
	metrics.StreamStartsTotal.WithLabelValues(kind).Inc()
	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	buf := make([]byte, relayBufferSize)
	written, err := io.CopyBuffer(w, reader, buf)
	metrics.StreamBytesTotal.Add(float64(written))

	if err != nil {
		if r.Context().Err() != nil {
			// Client went away; routine during seeking.
			s.logger.Debug("stream relay cancelled",
				slog.String("track_id", string(id)),
				slog.String("kind", kind),
				slog.Int64("written", written))
			return
		}
		metrics.StreamFailuresTotal.Inc()
		s.logger.Warn("stream relay failed",
			slog.String("track_id", string(id)),
			slog.String("kind", kind),
			slog.Int64("written", written),
			slog.String("error", err.Error()))
		return
	}

	metrics.StreamCompletionsTotal.WithLabelValues(kind).Inc()
	s.wsHub.BroadcastStreamFinished(id, kind, written)
	s.logger.Debug("stream relay completed",
		slog.String("track_id", string(id)),
		slog.String("kind", kind),
		slog.Int64("written", written),
		slog.Int64("expected", want))
}
