// Package providers adapts the external speech-to-text services to a single
// Provider interface. Adapters make exactly one upstream call per invocation
// and never retry.
package providers

import (
	"context"
	"fmt"
	"strings"
)

// Kind identifies a transcription provider
type Kind string

const (
	KindGemini        Kind = "gemini"
	KindOpenAIWhisper Kind = "openai_whisper"
	KindDeepgramNova  Kind = "deepgram_nova"
)

// DefaultKind is used when a request does not name a provider
const DefaultKind = KindGemini

// Kinds lists every supported provider
func Kinds() []Kind {
	return []Kind{KindGemini, KindOpenAIWhisper, KindDeepgramNova}
}

// ParseKind converts a wire value into a Kind. Empty input selects DefaultKind.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultKind, nil
	}
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown transcription service %q", s)
}

func (k Kind) String() string {
	return string(k)
}

// Audio is an uploaded audio payload
type Audio struct {
	Data     []byte
	MIMEType string
	Filename string
}

// Result is the normalized output of every adapter. MultiSpeakerOutput and
// Topics are only filled when the provider returns that data.
type Result struct {
	Transcription      string
	MultiSpeakerOutput string
	Topics             []string
}

// Provider transcribes audio through one external service
type Provider interface {
	Kind() Kind
	Model() string
	Transcribe(ctx context.Context, audio Audio, multiSpeaker bool) (*Result, error)
}
