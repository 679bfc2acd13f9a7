package apihttp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"musicstream/internal/domain"
	domainports "musicstream/internal/domain/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TrackPreparer yields fresh playback metadata for a track, hitting
// the upstream resolver on a cache miss.
type TrackPreparer interface {
	Prepare(ctx context.Context, id domain.TrackID) (domain.TrackInfo, error)
}

// StreamOpener opens the upstream audio bytes for a resolved track.
type StreamOpener interface {
	Execute(ctx context.Context, info domain.TrackInfo, rng *domain.ByteRange) (io.ReadCloser, error)
}

// TrackSearcher runs catalog text searches.
type TrackSearcher interface {
	Execute(ctx context.Context, query string, limit int) ([]domain.Track, error)
}

// ArtistFetcher loads artist profiles by catalog id or display name.
type ArtistFetcher interface {
	ByID(ctx context.Context, id string) (domain.Artist, error)
	ByName(ctx context.Context, name string) (domain.Artist, error)
}

type Server struct {
	preparer       TrackPreparer
	streamer       StreamOpener
	search         TrackSearcher
	artists        ArtistFetcher
	lyrics         domainports.LyricsProvider
	favorites      domainports.FavoritesStore
	allowedOrigins []string
	logger         *slog.Logger
	handler        http.Handler
	wsHub          *wsHub
}

type ServerOption func(*Server)

func WithStreamOpener(uc StreamOpener) ServerOption {
	return func(s *Server) {
		s.streamer = uc
	}
}

func WithSearch(uc TrackSearcher) ServerOption {
	return func(s *Server) {
		s.search = uc
	}
}

func WithArtists(uc ArtistFetcher) ServerOption {
	return func(s *Server) {
		s.artists = uc
	}
}

func WithLyrics(provider domainports.LyricsProvider) ServerOption {
	return func(s *Server) {
		s.lyrics = provider
	}
}

func WithFavorites(store domainports.FavoritesStore) ServerOption {
	return func(s *Server) {
		s.favorites = store
	}
}

// WithAllowedOrigins configures the CORS allowed origins whitelist.
// When empty (default), any origin is permitted.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(preparer TrackPreparer, opts ...ServerOption) *Server {
	s := &Server{
		preparer: preparer,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.wsHub = newWSHub(s.logger)
	go s.wsHub.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/recommendations", s.handleRecommendations)
	mux.HandleFunc("/api/track/", s.handleTrack)
	mux.HandleFunc("/api/check/", s.handleCheck)
	mux.HandleFunc("/api/play/", s.handlePlay)
	mux.HandleFunc("/api/lyrics/", s.handleLyrics)
	mux.HandleFunc("/api/artist/", s.handleArtist)
	mux.HandleFunc("/api/artist-by-name/", s.handleArtistByName)
	mux.HandleFunc("/api/favorites", s.handleFavorites)
	mux.HandleFunc("/api/favorites/", s.handleFavoriteByID)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/ws", s.handleWS)

	traced := otelhttp.NewHandler(loggingMiddleware(s.logger, mux), "musicstream",
		otelhttp.WithFilter(func(r *http.Request) bool {
			p := r.URL.Path
			return p != "/metrics" && p != "/api/health"
		}),
	)
	s.handler = recoveryMiddleware(s.logger, rateLimitMiddleware(100, 200, metricsMiddleware(corsMiddleware(s.allowedOrigins, traced))))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close shuts down the WebSocket hub, disconnecting all clients.
func (s *Server) Close() {
	if s.wsHub != nil {
		s.wsHub.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.wsHub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("ws upgrade failed", slog.String("error", err.Error()))
		return
	}
	client := &wsClient{
		hub:  s.wsHub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	s.wsHub.register <- client
	go client.writePump()
	go client.readPump()
}

// pathSuffix extracts the trailing path segment after the given prefix.
func pathSuffix(r *http.Request, prefix string) string {
	suffix := strings.TrimPrefix(r.URL.Path, prefix)
	suffix = strings.Trim(suffix, "/")
	if strings.Contains(suffix, "/") {
		return ""
	}
	return suffix
}
