package ytmusic

import (
	"context"
	"fmt"
	"strings"

	"musicstream/internal/domain"
)

type browseRequest struct {
	BrowseID string     `json:"browseId"`
	Context  apiContext `json:"context"`
}

// ArtistByID fetches and formats an artist profile by its browse id.
func (c *Client) ArtistByID(ctx context.Context, id string) (domain.Artist, error) {
	var parsed browseResponse
	payload := browseRequest{BrowseID: id, Context: newAPIContext()}
	if err := c.post(ctx, "browse", payload, &parsed); err != nil {
		return domain.Artist{}, err
	}

	header := parsed.Header.MusicImmersiveHeaderRenderer
	if len(header.Title.Runs) == 0 {
		return domain.Artist{}, fmt.Errorf("artist %s: %w", id, domain.ErrNotFound)
	}

	artist := domain.Artist{
		ID:          id,
		Name:        header.Title.Runs[0].Text,
		Followers:   formatListeners(joinRuns(header.SubscriptionButton.SubscribeButtonRenderer.SubscriberCountText)),
		Description: formatDescription(joinRuns(header.Description)),
	}
	if thumbs := header.Thumbnail.MusicThumbnailRenderer.Thumbnail.Thumbnails; len(thumbs) > 0 {
		artist.Image = thumbs[len(thumbs)-1].URL
	}

	for _, tab := range parsed.Contents.SingleColumnBrowseResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			for _, item := range section.MusicShelfRenderer.Contents {
				if track, ok := parseTrackItem(item.MusicResponsiveListItemRenderer); ok {
					artist.Songs = append(artist.Songs, track)
				}
			}
		}
	}

	c.logger.Debug("artist browsed", "browse_id", id, "songs", len(artist.Songs))
	return artist, nil
}

// ArtistByName resolves an artist through search, then browses the
// first artist result's channel.
func (c *Client) ArtistByName(ctx context.Context, name string) (domain.Artist, error) {
	var parsed searchResponse
	payload := searchRequest{Query: name, Params: searchParamsArtists, Context: newAPIContext()}
	if err := c.post(ctx, "search", payload, &parsed); err != nil {
		return domain.Artist{}, err
	}

	browseID := firstArtistBrowseID(parsed)
	if browseID == "" {
		return domain.Artist{}, fmt.Errorf("artist %q: %w", name, domain.ErrNotFound)
	}
	return c.ArtistByID(ctx, browseID)
}

func firstArtistBrowseID(parsed searchResponse) string {
	for _, tab := range parsed.Contents.TabbedSearchResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			for _, item := range section.MusicShelfRenderer.Contents {
				id := item.MusicResponsiveListItemRenderer.NavigationEndpoint.BrowseEndpoint.BrowseID
				if strings.HasPrefix(id, "UC") {
					return id
				}
			}
		}
	}
	return ""
}

func joinRuns(t textRuns) string {
	if len(t.Runs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, run := range t.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}
