package recordings

import "errors"

// ErrRecordingNotFound is returned when no recording has the requested ID
var ErrRecordingNotFound = errors.New("recording not found")
