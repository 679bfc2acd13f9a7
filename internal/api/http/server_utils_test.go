package apihttp

import (
	"errors"
	"testing"

	"musicstream/internal/domain"
)

func TestParseByteRange(t *testing.T) {
	cases := []struct {
		name  string
		value string
		size  int64
		want  domain.ByteRange
		err   error
	}{
		{"closed range", "bytes=100-199", 1000, domain.ByteRange{Start: 100, End: 199}, nil},
		{"open ended", "bytes=400-", 500, domain.ByteRange{Start: 400, End: 499}, nil},
		{"suffix", "bytes=-100", 500, domain.ByteRange{Start: 400, End: 499}, nil},
		{"suffix larger than size", "bytes=-900", 500, domain.ByteRange{Start: 0, End: 499}, nil},
		{"end clamped", "bytes=450-9999", 500, domain.ByteRange{Start: 450, End: 499}, nil},
		{"whole resource", "bytes=0-", 500, domain.ByteRange{Start: 0, End: 499}, nil},
		{"case insensitive unit", "Bytes=0-9", 500, domain.ByteRange{Start: 0, End: 9}, nil},
		{"spaces tolerated", " bytes=10-19 ", 500, domain.ByteRange{Start: 10, End: 19}, nil},
		{"start at size", "bytes=500-", 500, domain.ByteRange{}, errRangeNotSatisfiable},
		{"start beyond size", "bytes=9000-", 500, domain.ByteRange{}, errRangeNotSatisfiable},
		{"zero size", "bytes=0-10", 0, domain.ByteRange{}, errRangeNotSatisfiable},
		{"missing unit", "0-10", 500, domain.ByteRange{}, errInvalidRange},
		{"wrong unit", "chunks=0-10", 500, domain.ByteRange{}, errInvalidRange},
		{"empty spec", "bytes=", 500, domain.ByteRange{}, errInvalidRange},
		{"bare dash", "bytes=-", 500, domain.ByteRange{}, errInvalidRange},
		{"multi range", "bytes=0-10,20-30", 500, domain.ByteRange{}, errInvalidRange},
		{"non numeric", "bytes=abc-def", 500, domain.ByteRange{}, errInvalidRange},
		{"inverted", "bytes=20-10", 500, domain.ByteRange{}, errInvalidRange},
		{"negative start", "bytes=-0", 500, domain.ByteRange{}, errInvalidRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseByteRange(tc.value, tc.size)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("err = %v, want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("range = %+v, want %+v", got, tc.want)
			}
		})
	}
}
