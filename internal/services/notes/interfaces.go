// Package notes turns raw transcripts into polished markdown notes and
// classifies medical content with a generative language model.
package notes

import "context"

// Generator produces text from a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Polisher rewrites a raw transcription as a formatted note
type Polisher interface {
	Polish(ctx context.Context, raw string, medical bool) (string, error)
}

// TopicDetector classifies text and extracts medical topics
type TopicDetector interface {
	Detect(ctx context.Context, text string) (*TopicAnalysis, error)
}

// TopicAnalysis is the result of medical topic detection
type TopicAnalysis struct {
	IsMedical  bool     `json:"isMedical"`
	Confidence int      `json:"confidence"`
	Topics     []string `json:"topics"`
	Categories []string `json:"categories"`
}
