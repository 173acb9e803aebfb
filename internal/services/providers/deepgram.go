package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DeepgramConfig configures the Deepgram adapter
type DeepgramConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DeepgramNova posts raw audio to the Deepgram listen endpoint with diarization and topic detection
type DeepgramNova struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewDeepgramNova creates the adapter; it fails when no API key is configured
func NewDeepgramNova(cfg DeepgramConfig) (*DeepgramNova, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepgram: %w", ErrMissingCredential)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepgram.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &DeepgramNova{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}, nil
}

func (d *DeepgramNova) Kind() Kind    { return KindDeepgramNova }
func (d *DeepgramNova) Model() string { return d.model }

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []struct {
			Speaker    int    `json:"speaker"`
			Transcript string `json:"transcript"`
		} `json:"utterances"`
		Topics json.RawMessage `json:"topics"`
	} `json:"results"`
}

// Transcribe sends the audio and normalizes transcript, utterances and topics
func (d *DeepgramNova) Transcribe(ctx context.Context, audio Audio, multiSpeaker bool) (*Result, error) {
	params := url.Values{}
	params.Set("model", d.model)
	params.Set("smart_format", "true")
	params.Set("punctuate", "true")
	params.Set("diarize", strconv.FormatBool(multiSpeaker))
	params.Set("topics", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/listen?"+params.Encode(), bytes.NewReader(audio.Data))
	if err != nil {
		return nil, &Error{Provider: KindDeepgramNova, Kind: ErrorUpstream, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	if audio.MIMEType != "" {
		req.Header.Set("Content-Type", audio.MIMEType)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, transportError(KindDeepgramNova, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(KindDeepgramNova, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(KindDeepgramNova, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, badResponse(KindDeepgramNova, fmt.Errorf("decoding response: %w", err))
	}
	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return nil, badResponse(KindDeepgramNova, fmt.Errorf("response has no transcript alternative"))
	}

	result := &Result{
		Transcription: parsed.Results.Channels[0].Alternatives[0].Transcript,
		Topics:        parseDeepgramTopics(parsed.Results.Topics),
	}

	if multiSpeaker && len(parsed.Results.Utterances) > 0 {
		lines := make([]string, 0, len(parsed.Results.Utterances))
		for _, u := range parsed.Results.Utterances {
			lines = append(lines, fmt.Sprintf("Speaker %d: %s", u.Speaker, u.Transcript))
		}
		result.MultiSpeakerOutput = strings.Join(lines, "\n")
	}

	return result, nil
}

type deepgramTopic struct {
	Topic string `json:"topic"`
}

// parseDeepgramTopics accepts a flat list of topics or strings, or the
// segmented {segments:[{topics:[...]}]} shape. Duplicates are dropped.
func parseDeepgramTopics(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var flat []json.RawMessage
	if err := json.Unmarshal(raw, &flat); err == nil {
		return dedupe(topicNames(flat))
	}

	var segmented struct {
		Segments []struct {
			Topics []json.RawMessage `json:"topics"`
		} `json:"segments"`
	}
	if err := json.Unmarshal(raw, &segmented); err != nil {
		return nil
	}

	var names []string
	for _, seg := range segmented.Segments {
		names = append(names, topicNames(seg.Topics)...)
	}
	return dedupe(names)
}

func topicNames(items []json.RawMessage) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			names = append(names, s)
			continue
		}
		var t deepgramTopic
		if err := json.Unmarshal(item, &t); err == nil && t.Topic != "" {
			names = append(names, t.Topic)
		}
	}
	return names
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
