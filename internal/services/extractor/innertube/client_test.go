package innertube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"musicstream/internal/domain"
)

func playerJSON(status, reason string) string {
	return `{
		"playabilityStatus": {"status": "` + status + `", "reason": "` + reason + `"},
		"streamingData": {
			"adaptiveFormats": [
				{"itag": 137, "url": "http://cdn/video", "mimeType": "video/mp4; codecs=\"avc1\"", "bitrate": 2500000, "contentLength": "900000"},
				{"itag": 140, "url": "http://cdn/aac", "mimeType": "audio/mp4; codecs=\"mp4a.40.2\"", "bitrate": 130000, "contentLength": "3500000"},
				{"itag": 251, "url": "http://cdn/opus", "mimeType": "audio/webm; codecs=\"opus\"", "bitrate": 160000, "contentLength": "4200000"}
			]
		},
		"videoDetails": {"videoId": "abc123", "lengthSeconds": "212"}
	}`
}

func TestPlayerParsesFormats(t *testing.T) {
	var gotBody playerRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.HasPrefix(r.URL.Path, "/youtubei/v1/player") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		io.WriteString(w, playerJSON("OK", ""))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	media, err := client.Player(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Player failed: %v", err)
	}

	if gotBody.VideoID != "abc123" {
		t.Fatalf("request videoId = %q", gotBody.VideoID)
	}
	if gotBody.Context.Client.ClientName != "ANDROID" {
		t.Fatalf("request clientName = %q", gotBody.Context.Client.ClientName)
	}

	if len(media.Formats) != 3 {
		t.Fatalf("parsed %d formats, want 3", len(media.Formats))
	}
	if media.LengthSeconds != 212 {
		t.Fatalf("LengthSeconds = %d, want 212", media.LengthSeconds)
	}
	opus := media.Formats[2]
	if opus.Itag != 251 || opus.ContentLength != 4200000 || opus.URL != "http://cdn/opus" {
		t.Fatalf("unexpected opus format: %+v", opus)
	}
}

func TestPlayerRejectsUnplayable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, playerJSON("UNPLAYABLE", "This video is not available"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Player(context.Background(), "abc123")
	if err == nil || !strings.Contains(err.Error(), "UNPLAYABLE") {
		t.Fatalf("expected unplayable error, got %v", err)
	}
}

func TestPlayerRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.Player(context.Background(), "abc123"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestOpenStreamFull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "" {
			t.Errorf("unexpected Range header %q", r.Header.Get("Range"))
		}
		io.WriteString(w, "full payload")
	}))
	defer server.Close()

	client := NewClient()
	reader, err := client.OpenStream(context.Background(), domain.AudioFormat{URL: server.URL}, nil)
	if err != nil {
		t.Fatalf("OpenStream failed: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(data) != "full payload" {
		t.Fatalf("read %q", data)
	}
}

func TestOpenStreamRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Range"); got != "bytes=100-199" {
			t.Errorf("Range header = %q, want bytes=100-199", got)
		}
		w.Header().Set("Content-Range", "bytes 100-199/1000")
		w.WriteHeader(http.StatusPartialContent)
		w.Write(make([]byte, 100))
	}))
	defer server.Close()

	client := NewClient()
	rng := &domain.ByteRange{Start: 100, End: 199}
	reader, err := client.OpenStream(context.Background(), domain.AudioFormat{URL: server.URL}, rng)
	if err != nil {
		t.Fatalf("OpenStream failed: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if len(data) != 100 {
		t.Fatalf("read %d bytes, want 100", len(data))
	}
}

func TestOpenStreamRangeIgnoredByCDN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "whole thing")
	}))
	defer server.Close()

	client := NewClient()
	rng := &domain.ByteRange{Start: 0, End: 4}
	if _, err := client.OpenStream(context.Background(), domain.AudioFormat{URL: server.URL}, rng); err == nil {
		t.Fatal("expected error when range request gets a 200")
	}
}

func TestOpenStreamRequiresURL(t *testing.T) {
	client := NewClient()
	if _, err := client.OpenStream(context.Background(), domain.AudioFormat{}, nil); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestStreamClientHasNoOverallTimeout(t *testing.T) {
	client := NewClient()
	if client.httpClient.Timeout == 0 {
		t.Fatal("metadata client should carry an overall timeout")
	}
	if client.streamClient.Timeout != 0 {
		t.Fatalf("stream client timeout = %v, want none", client.streamClient.Timeout)
	}
}

func TestOpenStreamOutlivesMetadataClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "first half, ")
		w.(http.Flusher).Flush()
		time.Sleep(150 * time.Millisecond)
		io.WriteString(w, "second half")
	}))
	defer server.Close()

	// A metadata client this aggressive would kill the body read
	// mid-stream if OpenStream shared it.
	client := NewClient(WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	reader, err := client.OpenStream(context.Background(), domain.AudioFormat{URL: server.URL}, nil)
	if err != nil {
		t.Fatalf("OpenStream failed: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(data) != "first half, second half" {
		t.Fatalf("read %q", data)
	}
}
