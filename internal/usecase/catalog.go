package usecase

import (
	"context"
	"errors"

	"musicstream/internal/domain"
	"musicstream/internal/domain/ports"
)

// SearchTracks runs a text search against the upstream catalog.
type SearchTracks struct {
	Catalog ports.Catalog
}

func (uc *SearchTracks) Execute(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if uc.Catalog == nil {
		return nil, errors.New("catalog not configured")
	}
	tracks, err := uc.Catalog.Search(ctx, query, limit)
	if err != nil {
		return nil, wrapCatalog(err)
	}
	return tracks, nil
}

// GetArtist loads a formatted artist profile from the catalog, by
// channel id or by display name.
type GetArtist struct {
	Catalog ports.Catalog
}

func (uc *GetArtist) ByID(ctx context.Context, id string) (domain.Artist, error) {
	if uc.Catalog == nil {
		return domain.Artist{}, errors.New("catalog not configured")
	}
	artist, err := uc.Catalog.ArtistByID(ctx, id)
	if err != nil {
		return domain.Artist{}, wrapCatalog(err)
	}
	return artist, nil
}

func (uc *GetArtist) ByName(ctx context.Context, name string) (domain.Artist, error) {
	if uc.Catalog == nil {
		return domain.Artist{}, errors.New("catalog not configured")
	}
	artist, err := uc.Catalog.ArtistByName(ctx, name)
	if err != nil {
		return domain.Artist{}, wrapCatalog(err)
	}
	return artist, nil
}
