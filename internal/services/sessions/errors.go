package sessions

import "errors"

var (
	// ErrChunkExists is returned when a chunk index is ingested twice for a session
	ErrChunkExists = errors.New("chunk already ingested")

	// ErrTranscriptNotFound is returned when a session has not been finalized
	ErrTranscriptNotFound = errors.New("full transcript not found")
)
