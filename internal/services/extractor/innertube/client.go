// Package innertube extracts playable audio metadata and bytes from
// the source platform's internal JSON API.
package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"musicstream/internal/domain"
)

const (
	defaultBaseURL   = "https://www.youtube.com"
	defaultUserAgent = "com.google.android.youtube/19.09.37 (Linux; U; Android 14) gzip"

	// Android client credentials for the player endpoint. The Android
	// client returns direct stream URLs without signature ciphering.
	clientName    = "ANDROID"
	clientVersion = "19.09.37"
	androidSDK    = 34
)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithStreamHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.streamClient = hc
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

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
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

// Client talks to the platform's player endpoint and to the media CDN.
// Metadata calls go through httpClient, which carries an overall
// timeout. Media bytes go through streamClient, which must not: a
// relay runs at playback speed for the length of the track, bounded
// only by dial/TLS/header deadlines and the request context.
type Client struct {
	httpClient   *http.Client
	streamClient *http.Client
	baseURL      string
	userAgent    string
	logger       *slog.Logger
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		streamClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type playerRequest struct {
	VideoID string        `json:"videoId"`
	Context playerContext `json:"context"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion"`
	HL                string `json:"hl"`
	GL                string `json:"gl"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	StreamingData struct {
		AdaptiveFormats []wireFormat `json:"adaptiveFormats"`
	} `json:"streamingData"`
	VideoDetails struct {
		VideoID       string `json:"videoId"`
		LengthSeconds string `json:"lengthSeconds"`
	} `json:"videoDetails"`
}

// wireFormat mirrors one adaptiveFormats element. contentLength comes
// over the wire as a decimal string.
type wireFormat struct {
	Itag          int    `json:"itag"`
	URL           string `json:"url"`
	MimeType      string `json:"mimeType"`
	Bitrate       int    `json:"bitrate"`
	ContentLength string `json:"contentLength"`
}

// Player fetches the format list and duration for a track.
func (c *Client) Player(ctx context.Context, id domain.TrackID) (domain.MediaInfo, error) {
	payload := playerRequest{
		VideoID: string(id),
		Context: playerContext{
			Client: playerClient{
				ClientName:        clientName,
				ClientVersion:     clientVersion,
				AndroidSDKVersion: androidSDK,
				HL:                "en",
				GL:                "US",
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.MediaInfo{}, fmt.Errorf("encode player request: %w", err)
	}

	url := c.baseURL + "/youtubei/v1/player?prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.MediaInfo{}, fmt.Errorf("build player request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.MediaInfo{}, fmt.Errorf("player request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.MediaInfo{}, fmt.Errorf("player endpoint returned %s", resp.Status)
	}

	var parsed playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.MediaInfo{}, fmt.Errorf("decode player response: %w", err)
	}

	if status := parsed.PlayabilityStatus.Status; status != "OK" {
		if reason := parsed.PlayabilityStatus.Reason; reason != "" {
			return domain.MediaInfo{}, fmt.Errorf("track not playable: %s (%s)", status, reason)
		}
		return domain.MediaInfo{}, fmt.Errorf("track not playable: %s", status)
	}

	media := domain.MediaInfo{
		Formats: make([]domain.AudioFormat, 0, len(parsed.StreamingData.AdaptiveFormats)),
	}
	for _, f := range parsed.StreamingData.AdaptiveFormats {
		length, err := strconv.ParseInt(f.ContentLength, 10, 64)
		if err != nil {
			length = 0
		}
		media.Formats = append(media.Formats, domain.AudioFormat{
			Itag:          f.Itag,
			MimeType:      f.MimeType,
			Bitrate:       f.Bitrate,
			ContentLength: length,
			URL:           f.URL,
		})
	}
	if secs, err := strconv.ParseInt(parsed.VideoDetails.LengthSeconds, 10, 64); err == nil {
		media.LengthSeconds = secs
	}

	c.logger.Debug("player response parsed",
		"track_id", id,
		"formats", len(media.Formats),
		"length_seconds", media.LengthSeconds)
	return media, nil
}
