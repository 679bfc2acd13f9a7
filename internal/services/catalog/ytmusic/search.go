package ytmusic

import (
	"context"
	"strings"

	"musicstream/internal/domain"
)

type searchRequest struct {
	Query   string     `json:"query"`
	Params  string     `json:"params,omitempty"`
	Context apiContext `json:"context"`
}

// Search looks up songs matching the query. It returns at most limit
// tracks; limit <= 0 means no cap.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	var parsed searchResponse
	payload := searchRequest{Query: query, Params: searchParamsSongs, Context: newAPIContext()}
	if err := c.post(ctx, "search", payload, &parsed); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0)
	for _, tab := range parsed.Contents.TabbedSearchResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			for _, item := range section.MusicShelfRenderer.Contents {
				track, ok := parseTrackItem(item.MusicResponsiveListItemRenderer)
				if !ok {
					continue
				}
				tracks = append(tracks, track)
				if limit > 0 && len(tracks) >= limit {
					return tracks, nil
				}
			}
		}
	}

	c.logger.Debug("search completed", "query", query, "results", len(tracks))
	return tracks, nil
}

// parseTrackItem maps one search result row to a Track. Rows without a
// playable video id are skipped.
func parseTrackItem(item listItemRenderer) (domain.Track, bool) {
	if len(item.FlexColumns) == 0 {
		return domain.Track{}, false
	}

	titleRuns := item.FlexColumns[0].MusicResponsiveListItemFlexColumnRenderer.Text.Runs
	if len(titleRuns) == 0 {
		return domain.Track{}, false
	}
	videoID := titleRuns[0].NavigationEndpoint.WatchEndpoint.VideoID
	if videoID == "" {
		return domain.Track{}, false
	}

	track := domain.Track{
		ID:   domain.TrackID(videoID),
		Name: titleRuns[0].Text,
	}

	// The second column interleaves artist, album and duration runs
	// separated by " • " separators.
	if len(item.FlexColumns) > 1 {
		fillTrackDetails(&track, item.FlexColumns[1].MusicResponsiveListItemFlexColumnRenderer.Text.Runs)
	}
	if len(track.Artists) == 0 {
		track.Artists = []domain.ArtistRef{{Name: unknownArtist}}
	}
	if track.Album.Name == "" {
		track.Album.Name = unknownAlbum
	}

	track.Album.Images = []domain.Image{{URL: trackThumbnail(item, videoID)}}
	return track, true
}

func fillTrackDetails(track *domain.Track, runs []textRun) {
	for _, run := range runs {
		text := strings.TrimSpace(run.Text)
		switch {
		case text == "" || text == "•" || text == "&":
			continue
		case run.NavigationEndpoint.BrowseEndpoint.BrowseID != "":
			id := run.NavigationEndpoint.BrowseEndpoint.BrowseID
			if strings.HasPrefix(id, "UC") {
				track.Artists = append(track.Artists, domain.ArtistRef{Name: text})
			} else {
				track.Album.Name = text
			}
		case looksLikeDuration(text):
			track.DurationMs = parseDuration(text)
		case len(track.Artists) == 0:
			// Plain-text artist credit without a channel link.
			track.Artists = append(track.Artists, domain.ArtistRef{Name: text})
		}
	}
}

func looksLikeDuration(text string) bool {
	return parseDuration(text) > 0 || text == "0:00"
}

func trackThumbnail(item listItemRenderer, videoID string) string {
	thumbs := item.Thumbnail.MusicThumbnailRenderer.Thumbnail.Thumbnails
	if len(thumbs) > 0 {
		// The last entry is the largest rendition.
		return thumbs[len(thumbs)-1].URL
	}
	return thumbnailFallback(videoID)
}
