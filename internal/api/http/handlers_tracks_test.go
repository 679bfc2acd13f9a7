package apihttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"musicstream/internal/domain"
)

func newCatalogServer(t *testing.T, catalog *fakeCatalog, preparer *fakePreparer) *Server {
	t.Helper()
	if preparer == nil {
		preparer = &fakePreparer{}
	}
	s := NewServer(preparer, catalogOptions(catalog)...)
	t.Cleanup(s.Close)
	return s
}

func TestSearchReturnsTracks(t *testing.T) {
	catalog := &fakeCatalog{tracks: []domain.Track{testTrack("vid1", "Song", "Artist")}}
	server := newCatalogServer(t, catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=some+song", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if catalog.lastQuery != "some song" {
		t.Fatalf("catalog query = %q", catalog.lastQuery)
	}

	var tracks []domain.Track
	if err := json.NewDecoder(rec.Body).Decode(&tracks); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != "vid1" {
		t.Fatalf("tracks = %+v", tracks)
	}
}

func TestSearchAcceptsShortParam(t *testing.T) {
	catalog := &fakeCatalog{}
	server := newCatalogServer(t, catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=short", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if catalog.lastQuery != "short" {
		t.Fatalf("catalog query = %q", catalog.lastQuery)
	}
}

func TestSearchEmptyResultIsEmptyArray(t *testing.T) {
	server := newCatalogServer(t, &fakeCatalog{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=nothing", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("body = %q, want empty JSON array", body)
	}
}

func TestSearchUpstreamErrorIs500(t *testing.T) {
	catalog := &fakeCatalog{searchErr: errUpstreamDown}
	server := newCatalogServer(t, catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search?query=song", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var envelope errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error != "search failed" {
		t.Fatalf("error = %q", envelope.Error)
	}
	if envelope.Details == "" {
		t.Fatal("expected details in error envelope")
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	server := newCatalogServer(t, &fakeCatalog{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTrackByID(t *testing.T) {
	catalog := &fakeCatalog{tracks: []domain.Track{
		testTrack("other", "Other Song", "Artist"),
		testTrack("vid1", "Song", "Artist"),
	}}
	server := newCatalogServer(t, catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/track/vid1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var track domain.Track
	if err := json.NewDecoder(rec.Body).Decode(&track); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if track.ID != "vid1" || track.Name != "Song" {
		t.Fatalf("track = %+v", track)
	}
}

func TestTrackByIDNotFound(t *testing.T) {
	catalog := &fakeCatalog{tracks: []domain.Track{testTrack("other", "Other", "Artist")}}
	server := newCatalogServer(t, catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/track/missing", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCheckReady(t *testing.T) {
	preparer := &fakePreparer{info: testTrackInfo(1000, 60)}
	server := newCatalogServer(t, &fakeCatalog{}, preparer)

	req := httptest.NewRequest(http.MethodGet, "/api/check/vid1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp readyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !resp.Ready {
		t.Fatal("expected ready = true")
	}
}

func TestCheckNotReadyOnFailure(t *testing.T) {
	preparer := &fakePreparer{err: errUpstreamDown}
	server := newCatalogServer(t, &fakeCatalog{}, preparer)

	req := httptest.NewRequest(http.MethodGet, "/api/check/vid1", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp readyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Ready {
		t.Fatal("expected ready = false")
	}
}

func TestRecommendations(t *testing.T) {
	catalog := &fakeCatalog{tracks: []domain.Track{testTrack("vid1", "Hit", "Artist")}}
	server := newCatalogServer(t, catalog, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if catalog.lastQuery != recommendationsQuery {
		t.Fatalf("catalog query = %q", catalog.lastQuery)
	}
	if catalog.lastLimit != recommendationsLimit {
		t.Fatalf("catalog limit = %d", catalog.lastLimit)
	}
}

func TestRecommendationsEmptyIsError(t *testing.T) {
	server := newCatalogServer(t, &fakeCatalog{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
