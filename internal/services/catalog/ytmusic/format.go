package ytmusic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	unknownArtist      = "Unknown Artist"
	unknownAlbum       = "Unknown Album"
	defaultFollowers   = "over 1,000,000 listeners"
	defaultDescription = "No information about this artist."

	descriptionLimit = 500
)

// thumbnailFallback builds the static cover art URL used when the
// response carries no thumbnail for a track.
func thumbnailFallback(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID)
}

// parseDuration converts a "m:ss" or "h:mm:ss" label to milliseconds.
// Returns 0 for anything it cannot parse.
func parseDuration(label string) int64 {
	parts := strings.Split(strings.TrimSpace(label), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total * 1000
}

var nonDigitDot = regexp.MustCompile(`[^\d.]`)

// parseListenerCount extracts a numeric audience size from labels like
// "1.23M subscribers" or "984K subscribers".
func parseListenerCount(label string) (int64, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	multiplier := int64(1)
	switch {
	case strings.ContainsAny(label, "Bb"):
		multiplier = 1_000_000_000
	case strings.ContainsAny(label, "Mm"):
		multiplier = 1_000_000
	case strings.ContainsAny(label, "Kk"):
		multiplier = 1_000
	}

	numeric := nonDigitDot.ReplaceAllString(label, "")
	if numeric == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, false
	}
	return int64(value * float64(multiplier)), true
}

// formatListeners humanizes an audience size for the artist profile.
func formatListeners(label string) string {
	count, ok := parseListenerCount(label)
	if !ok {
		return defaultFollowers
	}
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%dM listeners", count/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%dK listeners", count/1_000)
	default:
		return fmt.Sprintf("%d listeners", count)
	}
}

var excessBlankLines = regexp.MustCompile(`(\r\n|\r|\n){3,}`)

// formatDescription reflows an artist biography into paragraphs and
// truncates it for the profile card.
func formatDescription(description string) string {
	if description == "" {
		return defaultDescription
	}

	formatted := strings.ReplaceAll(description, ". ", ".\n\n")
	formatted = excessBlankLines.ReplaceAllString(formatted, "\n\n")
	formatted = strings.TrimSpace(formatted)

	runes := []rune(formatted)
	if len(runes) > descriptionLimit {
		formatted = string(runes[:descriptionLimit-3]) + "..."
	}
	return formatted
}
