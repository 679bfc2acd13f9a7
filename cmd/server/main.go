package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apihttp "musicstream/internal/api/http"
	"musicstream/internal/app"
	"musicstream/internal/cache"
	"musicstream/internal/metrics"
	"musicstream/internal/services/catalog/ytmusic"
	"musicstream/internal/services/extractor/innertube"
	"musicstream/internal/services/lyrics"
	"musicstream/internal/storage/memory"
	"musicstream/internal/telemetry"
	"musicstream/internal/usecase"
)

func main() {
	cfg := app.LoadConfig()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics.Register(prometheus.DefaultRegisterer)

	shutdownTracer, err := telemetry.Init(context.Background(), "musicstream")
	if err != nil {
		logger.Warn("otel init failed", slog.String("error", err.Error()))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	logger.Info("configuration loaded",
		slog.String("service", "musicstream"),
		slog.String("httpAddr", cfg.HTTPAddr),
		slog.String("logLevel", cfg.LogLevel),
		slog.String("logFormat", cfg.LogFormat),
		slog.Duration("cacheTTL", cfg.CacheTTL),
		slog.Duration("resolveTimeout", cfg.ResolveTimeout),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor := innertube.NewClient(
		innertube.WithBaseURL(cfg.PlayerBaseURL),
		innertube.WithUserAgent(cfg.UserAgent),
		innertube.WithLogger(logger),
	)
	catalog := ytmusic.NewClient(
		ytmusic.WithBaseURL(cfg.CatalogBaseURL),
		ytmusic.WithLogger(logger),
	)
	lyricsClient := lyrics.NewClient(
		lyrics.WithBaseURL(cfg.LyricsBaseURL),
		lyrics.WithTimeout(cfg.LyricsTimeout),
		lyrics.WithLogger(logger),
	)
	favorites := memory.NewFavoritesStore()

	resolveUC := &usecase.ResolveTrack{Extractor: extractor, Timeout: cfg.ResolveTimeout, Now: time.Now}
	streamUC := &usecase.StreamTrack{Extractor: extractor}
	searchUC := &usecase.SearchTracks{Catalog: catalog}
	artistUC := &usecase.GetArtist{Catalog: catalog}

	trackCache := cache.New(resolveUC,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithFlushInterval(cfg.CacheFlushInterval),
		cache.WithLogger(logger),
	)
	trackCache.Start()
	defer trackCache.Stop()

	handler := apihttp.NewServer(trackCache,
		apihttp.WithStreamOpener(streamUC),
		apihttp.WithSearch(searchUC),
		apihttp.WithArtists(artistUC),
		apihttp.WithLyrics(lyricsClient),
		apihttp.WithFavorites(favorites),
		apihttp.WithAllowedOrigins(cfg.CORSAllowedOrigins),
		apihttp.WithLogger(logger),
	)

	// WriteTimeout stays 0: audio relays are open-ended.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server started", slog.String("addr", cfg.HTTPAddr))

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	handler.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

func newLogger(levelRaw, formatRaw string) *slog.Logger {
	level := parseLogLevel(levelRaw)
	options := &slog.HandlerOptions{Level: level}
	format := strings.ToLower(strings.TrimSpace(formatRaw))
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
