package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"musicstream/internal/domain"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: message})
}

func writeErrorDetails(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorEnvelope{Error: message, Details: details})
}

// writeCatalogError maps catalog lookup failures: not-found to 404,
// anything else (including wrapped upstream failures) to 500.
func writeCatalogError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeErrorDetails(w, http.StatusInternalServerError, message, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

var (
	errInvalidRange        = errors.New("invalid range")
	errRangeNotSatisfiable = errors.New("range not satisfiable")
)

// parseByteRange interprets a single-range Range header value against
// the resource size. Suffix ranges (bytes=-N) and open-ended ranges
// (bytes=N-) are supported; multi-range requests are rejected.
func parseByteRange(value string, size int64) (domain.ByteRange, error) {
	if size <= 0 {
		return domain.ByteRange{}, errRangeNotSatisfiable
	}

	value = strings.TrimSpace(value)
	if !strings.HasPrefix(strings.ToLower(value), "bytes=") {
		return domain.ByteRange{}, errInvalidRange
	}

	spec := strings.TrimSpace(value[len("bytes="):])
	if spec == "" || strings.Contains(spec, ",") {
		return domain.ByteRange{}, errInvalidRange
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return domain.ByteRange{}, errInvalidRange
	}
	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])

	if startStr == "" {
		if endStr == "" {
			return domain.ByteRange{}, errInvalidRange
		}
		suffix, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || suffix <= 0 {
			return domain.ByteRange{}, errInvalidRange
		}
		if suffix > size {
			suffix = size
		}
		return domain.ByteRange{Start: size - suffix, End: size - 1}, nil
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return domain.ByteRange{}, errInvalidRange
	}
	if start >= size {
		return domain.ByteRange{}, errRangeNotSatisfiable
	}

	if endStr == "" {
		return domain.ByteRange{Start: start, End: size - 1}, nil
	}

	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil || end < 0 {
		return domain.ByteRange{}, errInvalidRange
	}
	if end < start {
		return domain.ByteRange{}, errInvalidRange
	}
	if end >= size {
		end = size - 1
	}
	return domain.ByteRange{Start: start, End: end}, nil
}
