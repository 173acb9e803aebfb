package transcription

import (
	"context"
	"strings"

	"github.com/killallgit/voicenotes-api/internal/logging"
	"github.com/killallgit/voicenotes-api/internal/services/notes"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
)

// Service implements the TranscriptionService interface
type Service struct {
	providers ProviderSource
	polisher  notes.Polisher
	detector  notes.TopicDetector
	maxSize   int64
}

// NewService creates a new transcription service. maxSize <= 0 selects MaxAudioSize.
func NewService(source ProviderSource, polisher notes.Polisher, detector notes.TopicDetector, maxSize int64) *Service {
	if maxSize <= 0 {
		maxSize = MaxAudioSize
	}
	return &Service{
		providers: source,
		polisher:  polisher,
		detector:  detector,
		maxSize:   maxSize,
	}
}

// Transcribe runs validation, the provider call, polishing and topic detection in order.
// A provider failure is returned as is; polish and detection failures only empty their fields.
func (s *Service) Transcribe(ctx context.Context, req Request) (*Result, error) {
	logger := logging.Component("transcription")

	if err := ValidateAudio(req.Audio, s.maxSize); err != nil {
		return nil, err
	}

	kind := req.Provider
	if kind == "" {
		kind = providers.DefaultKind
	}

	provider, err := s.providers.Get(kind)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str(logging.FieldProvider, string(kind)).
		Int("size", len(req.Audio.Data)).
		Str("content_type", req.Audio.MIMEType).
		Bool("medical", req.EnableMedical).
		Bool("multi_speaker", req.EnableMultiSpeaker).
		Msg("Transcribing audio")

	out, err := provider.Transcribe(ctx, req.Audio, req.EnableMultiSpeaker)
	if err != nil {
		logger.Error().Err(err).Str(logging.FieldProvider, string(kind)).Msg("Provider transcription failed")
		return nil, err
	}

	raw := out.Transcription
	result := &Result{
		RawTranscription:   raw,
		MultiSpeakerOutput: raw,
		MedicalTopics:      []string{},
		Service:            kind,
	}
	if strings.TrimSpace(out.MultiSpeakerOutput) != "" {
		result.MultiSpeakerOutput = out.MultiSpeakerOutput
	}

	if note, err := s.polisher.Polish(ctx, raw, req.EnableMedical); err != nil {
		logger.Warn().Err(err).Msg("Failed to polish note")
	} else {
		result.PolishedNote = note
	}

	if req.EnableMedical {
		result.MedicalTopics = s.medicalTopics(ctx, raw, out.Topics)
	}

	logger.Info().
		Str(logging.FieldProvider, string(kind)).
		Int("transcript_length", len(raw)).
		Int("topics", len(result.MedicalTopics)).
		Msg("Transcription complete")

	return result, nil
}

func (s *Service) medicalTopics(ctx context.Context, raw string, providerTopics []string) []string {
	if len(providerTopics) > 0 {
		return providerTopics
	}

	analysis, err := s.detector.Detect(ctx, raw)
	if err != nil {
		logger := logging.Component("transcription")
		logger.Warn().Err(err).Msg("Medical topic detection failed")
		return []string{}
	}
	if analysis == nil || analysis.Topics == nil {
		return []string{}
	}
	return analysis.Topics
}
