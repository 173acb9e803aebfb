package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTranscription is returned when there is nothing to polish
var ErrEmptyTranscription = errors.New("no transcription provided to polish")

const polishPrompt = `Take this raw transcription and create a polished, well-formatted note.
Remove filler words (um, uh, like), repetitions, and false starts.
Format any lists or bullet points properly. Use markdown formatting for headings, lists, etc.
Maintain all the original content and meaning.`

const polishMedicalPrompt = `

MEDICAL CONTEXT ANALYSIS:
Since this appears to be medical content, please also:
1. Identify and highlight any medical terms, conditions, or procedures mentioned
2. Organize content into relevant medical sections (e.g., Chief Complaint, History, Assessment, Plan)
3. Flag any critical information that might need immediate attention
4. Use proper medical terminology and formatting
5. Add a "Medical Topics Detected" section at the end listing key medical concepts mentioned

Format medical terms in **bold** and use appropriate medical documentation structure.`

// NotePolisher implements Polisher on top of a Generator
type NotePolisher struct {
	gen Generator
}

// NewPolisher creates a polisher
func NewPolisher(gen Generator) *NotePolisher {
	return &NotePolisher{gen: gen}
}

// Polish returns the markdown note for raw
func (p *NotePolisher) Polish(ctx context.Context, raw string, medical bool) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyTranscription
	}

	note, err := p.gen.Generate(ctx, buildPolishPrompt(raw, medical))
	if err != nil {
		return "", fmt.Errorf("polishing note: %w", err)
	}
	return note, nil
}

func buildPolishPrompt(raw string, medical bool) string {
	var sb strings.Builder
	sb.WriteString(polishPrompt)
	if medical {
		sb.WriteString(polishMedicalPrompt)
	}
	sb.WriteString("\n\nRaw transcription:\n")
	sb.WriteString(raw)
	return sb.String()
}
