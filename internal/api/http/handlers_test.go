package apihttp

import (
	"context"
	"errors"
	"io"
	"strings"

	"musicstream/internal/domain"
	"musicstream/internal/usecase"
)

type fakePreparer struct {
	info domain.TrackInfo
	err  error

	lastID domain.TrackID
}

func (f *fakePreparer) Prepare(ctx context.Context, id domain.TrackID) (domain.TrackInfo, error) {
	f.lastID = id
	return f.info, f.err
}

type fakeStreamer struct {
	payload string
	err     error

	lastRng *domain.ByteRange
	calls   int
}

func (f *fakeStreamer) Execute(ctx context.Context, info domain.TrackInfo, rng *domain.ByteRange) (io.ReadCloser, error) {
	f.calls++
	f.lastRng = rng
	if f.err != nil {
		return nil, f.err
	}
	payload := f.payload
	if rng != nil {
		payload = payload[rng.Start : rng.End+1]
	}
	return io.NopCloser(strings.NewReader(payload)), nil
}

type fakeCatalog struct {
	tracks    []domain.Track
	searchErr error

	artist    domain.Artist
	artistErr error

	lastQuery string
	lastLimit int
	lastID    string
	lastName  string
}

func (f *fakeCatalog) Search(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	f.lastQuery = query
	f.lastLimit = limit
	return f.tracks, f.searchErr
}

func (f *fakeCatalog) ArtistByID(ctx context.Context, id string) (domain.Artist, error) {
	f.lastID = id
	return f.artist, f.artistErr
}

func (f *fakeCatalog) ArtistByName(ctx context.Context, name string) (domain.Artist, error) {
	f.lastName = name
	return f.artist, f.artistErr
}

type fakeLyrics struct {
	result domain.LyricsResult
	err    error

	lastTrack  string
	lastArtist string
}

func (f *fakeLyrics) Fetch(ctx context.Context, track, artist string) (domain.LyricsResult, error) {
	f.lastTrack = track
	f.lastArtist = artist
	return f.result, f.err
}

// catalogOptions wires a catalog fake through the real search and
// artist use cases, exercising their error wrapping end to end.
func catalogOptions(catalog *fakeCatalog) []ServerOption {
	return []ServerOption{
		WithSearch(&usecase.SearchTracks{Catalog: catalog}),
		WithArtists(&usecase.GetArtist{Catalog: catalog}),
	}
}

var errUpstreamDown = errors.New("upstream down")

func testTrack(id, name, artist string) domain.Track {
	return domain.Track{
		ID:      domain.TrackID(id),
		Name:    name,
		Artists: []domain.ArtistRef{{Name: artist}},
		Album: domain.Album{
			Name:   "Album",
			Images: []domain.Image{{URL: "http://thumb/" + id}},
		},
		DurationMs: 225000,
	}
}

func testTrackInfo(contentLength, lengthSeconds int64) domain.TrackInfo {
	return domain.TrackInfo{
		Format: domain.AudioFormat{
			Itag:          140,
			MimeType:      "audio/mp4",
			Bitrate:       128000,
			ContentLength: contentLength,
			URL:           "http://cdn/audio",
		},
		ContentLength: contentLength,
		LengthSeconds: lengthSeconds,
	}
}
