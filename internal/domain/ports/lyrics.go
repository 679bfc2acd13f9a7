package ports

import (
	"context"

	"musicstream/internal/domain"
)

// LyricsProvider fetches lyrics text for a track/artist pair. A miss is
// not an error: providers report it through LyricsResult.Source so the
// handler can serve a structured "not found" payload.
type LyricsProvider interface {
	Fetch(ctx context.Context, track, artist string) (domain.LyricsResult, error)
}
