package providers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// OpenAIConfig configures the Whisper adapter
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIWhisper posts multipart uploads to an OpenAI-compatible transcription endpoint
type OpenAIWhisper struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewOpenAIWhisper creates the adapter; it fails when no API key is configured
func NewOpenAIWhisper(cfg OpenAIConfig) (*OpenAIWhisper, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai whisper: %w", ErrMissingCredential)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &OpenAIWhisper{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}, nil
}

func (o *OpenAIWhisper) Kind() Kind    { return KindOpenAIWhisper }
func (o *OpenAIWhisper) Model() string { return o.model }

// Transcribe uploads the audio and returns the plain-text transcript.
// Whisper does not label speakers, so the multi-speaker output is the transcript itself.
func (o *OpenAIWhisper) Transcribe(ctx context.Context, audio Audio, multiSpeaker bool) (*Result, error) {
	body, contentType, err := o.buildForm(audio, multiSpeaker)
	if err != nil {
		return nil, &Error{Provider: KindOpenAIWhisper, Kind: ErrorUpstream, Err: fmt.Errorf("building request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return nil, &Error{Provider: KindOpenAIWhisper, Kind: ErrorUpstream, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, transportError(KindOpenAIWhisper, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(KindOpenAIWhisper, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(KindOpenAIWhisper, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	text := strings.TrimSpace(string(payload))
	if text == "" {
		return nil, badResponse(KindOpenAIWhisper, fmt.Errorf("empty transcription"))
	}

	return &Result{
		Transcription:      text,
		MultiSpeakerOutput: text,
	}, nil
}

func (o *OpenAIWhisper) buildForm(audio Audio, multiSpeaker bool) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := audio.Filename
	if filename == "" {
		filename = "audio.webm"
	}
	mimeType := audio.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(audio.Data); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"model", o.model},
		{"response_format", "text"},
	}
	if multiSpeaker {
		fields = append(fields, [2]string{"timestamp_granularities[]", "segment"})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
