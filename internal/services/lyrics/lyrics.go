// Package lyrics fetches song texts from the lyrics.ovh public API.
package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"musicstream/internal/domain"
)

const (
	defaultBaseURL = "https://api.lyrics.ovh"
	defaultTimeout = 10 * time.Second

	sourceOvh      = "lyrics.ovh"
	sourceNotFound = "not_found"
	sourceError    = "error"
)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch looks the lyrics up, first with cleaned track and artist names
// and then with the raw ones. A missing text is not an error: the
// result carries source "not_found" instead.
func (c *Client) Fetch(ctx context.Context, track, artist string) (domain.LyricsResult, error) {
	if track == "" || artist == "" {
		return domain.LyricsResult{
			Lyrics: "Not enough data to look up the lyrics.",
			Source: sourceError,
			Err:    "MISSING_DATA",
		}, nil
	}

	cleanTrack := CleanupMusicData(track)
	cleanArtist := CleanupMusicData(artist)
	if cleanTrack == "" || cleanArtist == "" {
		return domain.LyricsResult{
			Lyrics: "Could not normalize the track name or artist name.",
			Source: sourceError,
			Err:    "INVALID_DATA",
		}, nil
	}

	variants := []struct{ track, artist string }{
		{cleanTrack, cleanArtist},
		{track, artist},
	}
	for _, v := range variants {
		text, found, err := c.lookup(ctx, v.track, v.artist)
		if err != nil {
			return domain.LyricsResult{}, err
		}
		if found {
			return domain.LyricsResult{Lyrics: formatLyrics(text), Source: sourceOvh}, nil
		}
		c.logger.Debug("lyrics variant missed", "track", v.track, "artist", v.artist)
	}

	return domain.LyricsResult{
		Lyrics: fmt.Sprintf("No lyrics found for %q by %q.", track, artist),
		Source: sourceNotFound,
	}, nil
}

type ovhResponse struct {
	Lyrics string `json:"lyrics"`
}

func (c *Client) lookup(ctx context.Context, track, artist string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/%s/%s", c.baseURL, url.PathEscape(artist), url.PathEscape(track))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("build lyrics request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("lyrics request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("lyrics endpoint returned %s", resp.Status)
	}

	var parsed ovhResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decode lyrics response: %w", err)
	}
	if parsed.Lyrics == "" {
		return "", false, nil
	}
	return parsed.Lyrics, true, nil
}

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	bracketedTags    = regexp.MustCompile(`\[.*?\]`)
)

func formatLyrics(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	text = bracketedTags.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var (
	featTag       = regexp.MustCompile(`(?i)\((?:feat|ft)\.?.*?\)`)
	bracketedAny  = regexp.MustCompile(`\[.*?\]`)
	parenthesized = regexp.MustCompile(`\(.*?\)`)
	videoTag      = regexp.MustCompile(`(?i)official\s*(music)?\s*video|lyrics\s*video`)
	qualityTag    = regexp.MustCompile(`(?i)\b(hd|hq)\b`)
	yearTag       = regexp.MustCompile(`\d{4}`)
	punctuation   = regexp.MustCompile(`[^\w\s-]`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// CleanupMusicData strips release noise (feat. credits, bracketed
// tags, "official video" suffixes, years) from a track or artist name
// so lyrics lookups hit the database's canonical entries.
func CleanupMusicData(text string) string {
	text = strings.ToLower(text)
	text = featTag.ReplaceAllString(text, "")
	text = bracketedAny.ReplaceAllString(text, "")
	text = parenthesized.ReplaceAllString(text, "")
	text = videoTag.ReplaceAllString(text, "")
	text = qualityTag.ReplaceAllString(text, "")
	text = yearTag.ReplaceAllString(text, "")
	text = punctuation.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
