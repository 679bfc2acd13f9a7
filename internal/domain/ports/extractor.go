package ports

import (
	"context"
	"io"

	"musicstream/internal/domain"
)

// Extractor resolves a track id to its available renditions and opens
// byte streams for a chosen rendition, optionally bounded to a byte
// range. Stream readers honor the passed context: cancelling it aborts
// the upstream transfer.
type Extractor interface {
	Player(ctx context.Context, id domain.TrackID) (domain.MediaInfo, error)
	OpenStream(ctx context.Context, format domain.AudioFormat, rng *domain.ByteRange) (io.ReadCloser, error)
}
