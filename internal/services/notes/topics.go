package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const topicPrompt = `Analyze the following text and determine if it contains medical content.
If it does, extract key medical topics, conditions, procedures, medications, or symptoms mentioned.

Return your analysis in this JSON format:
{
  "isMedical": true/false,
  "confidence": 0-100,
  "topics": ["topic1", "topic2", ...],
  "categories": ["symptoms", "conditions", "procedures", "medications", ...]
}

Text to analyze:
`

// Confidence values used when the model answer is not valid JSON
const (
	fallbackMedicalConfidence    = 70
	fallbackNonMedicalConfidence = 30
)

var medicalKeywords = []string{"medical", "health", "symptom"}

// MedicalTopicDetector implements TopicDetector on top of a Generator
type MedicalTopicDetector struct {
	gen Generator
}

// NewTopicDetector creates a detector
func NewTopicDetector(gen Generator) *MedicalTopicDetector {
	return &MedicalTopicDetector{gen: gen}
}

// Detect asks the model for a JSON analysis of text. Unparseable answers
// fall back to a keyword check over the answer itself.
func (d *MedicalTopicDetector) Detect(ctx context.Context, text string) (*TopicAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return emptyAnalysis(), nil
	}

	answer, err := d.gen.Generate(ctx, topicPrompt+text)
	if err != nil {
		return nil, fmt.Errorf("detecting topics: %w", err)
	}

	analysis, err := parseAnalysis(answer)
	if err != nil {
		log.Debug().Err(err).Msg("topic analysis was not JSON, using keyword fallback")
		return keywordAnalysis(answer), nil
	}
	return analysis, nil
}

func parseAnalysis(answer string) (*TopicAnalysis, error) {
	var analysis TopicAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(answer)), &analysis); err != nil {
		return nil, err
	}
	if analysis.Topics == nil {
		analysis.Topics = []string{}
	}
	if analysis.Categories == nil {
		analysis.Categories = []string{}
	}
	return &analysis, nil
}

func keywordAnalysis(answer string) *TopicAnalysis {
	analysis := emptyAnalysis()
	lower := strings.ToLower(answer)
	for _, kw := range medicalKeywords {
		if strings.Contains(lower, kw) {
			analysis.IsMedical = true
			break
		}
	}
	if analysis.IsMedical {
		analysis.Confidence = fallbackMedicalConfidence
	} else {
		analysis.Confidence = fallbackNonMedicalConfidence
	}
	return analysis
}

func emptyAnalysis() *TopicAnalysis {
	return &TopicAnalysis{Topics: []string{}, Categories: []string{}}
}

// stripCodeFence removes a surrounding ``` or ```json fence
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
