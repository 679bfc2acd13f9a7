package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"musicstream/internal/domain"
	"musicstream/internal/domain/ports"
)

const defaultResolveTimeout = 15 * time.Second

// ResolveTrack fetches playback metadata for a track and selects the
// best audio-only format from the adaptive format list.
type ResolveTrack struct {
	Extractor ports.Extractor
	Timeout   time.Duration
	Now       func() time.Time
}

func (uc *ResolveTrack) Execute(ctx context.Context, id domain.TrackID) (domain.TrackInfo, error) {
	if uc.Extractor == nil {
		return domain.TrackInfo{}, errors.New("extractor not configured")
	}

	timeout := uc.Timeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	media, err := uc.Extractor.Player(ctx, id)
	if err != nil {
		return domain.TrackInfo{}, wrapExtractor(err)
	}

	format, ok := selectAudioFormat(media.Formats)
	if !ok {
		return domain.TrackInfo{}, domain.ErrNoAudioFormat
	}

	info := domain.TrackInfo{
		Format:        format,
		ContentLength: format.ContentLength,
		LengthSeconds: media.LengthSeconds,
		ResolvedAt:    uc.now(),
	}
	if err := info.Validate(); err != nil {
		return domain.TrackInfo{}, wrapExtractor(err)
	}
	return info, nil
}

func (uc *ResolveTrack) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// selectAudioFormat picks the audio-only format with the highest bitrate.
// Video and muxed formats are skipped entirely. A format with a known
// byte size beats any unknown-size one regardless of bitrate: without a
// size the play endpoint cannot answer range requests.
func selectAudioFormat(formats []domain.AudioFormat) (domain.AudioFormat, bool) {
	var best domain.AudioFormat
	found := false
	for _, f := range formats {
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if f.URL == "" {
			continue
		}
		if !found || betterFormat(f, best) {
			best = f
			found = true
		}
	}
	return best, found
}

func betterFormat(candidate, current domain.AudioFormat) bool {
	candidateSized := candidate.ContentLength > 0
	currentSized := current.ContentLength > 0
	if candidateSized != currentSized {
		return candidateSized
	}
	return candidate.Bitrate > current.Bitrate
}
