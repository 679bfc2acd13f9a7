package ports

import (
	"context"

	"musicstream/internal/domain"
)

// Catalog is the music catalog lookup collaborator: text search plus
// artist profiles. Implementations return domain.ErrNotFound when the
// upstream has no matching entity.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Track, error)
	ArtistByID(ctx context.Context, id string) (domain.Artist, error)
	ArtistByName(ctx context.Context, name string) (domain.Artist, error)
}
