package innertube

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"musicstream/internal/domain"
)

// streamBufferSize matches the relay buffer so the CDN is read in the
// same granularity the client is served in.
const streamBufferSize = 1 << 20

// OpenStream opens the media bytes behind a resolved format,
// optionally limited to a byte range.
func (c *Client) OpenStream(ctx context.Context, format domain.AudioFormat, rng *domain.ByteRange) (io.ReadCloser, error) {
	if format.URL == "" {
		return nil, errors.New("format has no stream url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, format.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build stream request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if rng != nil {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", rng.Start, rng.End))
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("cdn returned %s", resp.Status)
	}
	if rng != nil && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("cdn ignored range request, returned %s", resp.Status)
	}

	return &bufferedStream{
		reader: bufio.NewReaderSize(resp.Body, streamBufferSize),
		body:   resp.Body,
	}, nil
}

type bufferedStream struct {
	reader *bufio.Reader
	body   io.ReadCloser
}

func (s *bufferedStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *bufferedStream) Close() error {
	return s.body.Close()
}
