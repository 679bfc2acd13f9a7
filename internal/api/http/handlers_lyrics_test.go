package apihttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"musicstream/internal/domain"
)

func newLyricsServer(t *testing.T, catalog *fakeCatalog, provider *fakeLyrics) *Server {
	t.Helper()
	opts := append(catalogOptions(catalog), WithLyrics(provider))
	s := NewServer(&fakePreparer{}, opts...)
	t.Cleanup(s.Close)
	return s
}

func TestLyricsFound(t *testing.T) {
	catalog := &fakeCatalog{tracks: []domain.Track{testTrack("vid1", "Song", "Artist")}}
	provider := &fakeLyrics{result: domain.LyricsResult{Lyrics: "la la la", Source: "lyrics.ovh"}}
	server := newLyricsServer(t, catalog, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/lyrics/vid1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if provider.lastTrack != "Song" || provider.lastArtist != "Artist" {
		t.Fatalf("provider received %q / %q", provider.lastTrack, provider.lastArtist)
	}
	var result domain.LyricsResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Lyrics != "la la la" || result.Source != "lyrics.ovh" {
		t.Fatalf("result = %+v", result)
	}
}

func TestLyricsTrackNotFound(t *testing.T) {
	server := newLyricsServer(t, &fakeCatalog{}, &fakeLyrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/lyrics/ghost", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var result domain.LyricsResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Source != "error" || result.Err != "TRACK_NOT_FOUND" {
		t.Fatalf("result = %+v", result)
	}
}

func TestLyricsProviderFailure(t *testing.T) {
	catalog := &fakeCatalog{tracks: []domain.Track{testTrack("vid1", "Song", "Artist")}}
	provider := &fakeLyrics{err: errUpstreamDown}
	server := newLyricsServer(t, catalog, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/lyrics/vid1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var result domain.LyricsResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Source != "error" {
		t.Fatalf("result = %+v", result)
	}
}

func TestLyricsIncompleteTrackData(t *testing.T) {
	track := testTrack("vid1", "Song", "Artist")
	track.Artists = nil
	catalog := &fakeCatalog{tracks: []domain.Track{track}}
	server := newLyricsServer(t, catalog, &fakeLyrics{})

	req := httptest.NewRequest(http.MethodGet, "/api/lyrics/vid1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var result domain.LyricsResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Err != "INVALID_TRACK_DATA" {
		t.Fatalf("result = %+v", result)
	}
}
