package usecase

import (
	"context"
	"errors"
	"io"

	"musicstream/internal/domain"
	"musicstream/internal/domain/ports"
)

// StreamTrack opens the upstream audio stream for an already-resolved
// track, optionally constrained to a byte range.
type StreamTrack struct {
	Extractor ports.Extractor
}

func (uc *StreamTrack) Execute(ctx context.Context, info domain.TrackInfo, rng *domain.ByteRange) (io.ReadCloser, error) {
	if uc.Extractor == nil {
		return nil, errors.New("extractor not configured")
	}
	if rng != nil {
		if err := rng.Validate(info.ContentLength); err != nil {
			return nil, err
		}
	}

	reader, err := uc.Extractor.OpenStream(ctx, info.Format, rng)
	if err != nil {
		return nil, wrapExtractor(err)
	}
	return reader, nil
}
