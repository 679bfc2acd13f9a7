package domain

import "errors"

var ErrNotFound = errors.New("not found")
var ErrNoAudioFormat = errors.New("no audio-only format available")
