package providers

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog/log"
)

// credentialEnv names the environment variable that configures each provider
var credentialEnv = map[Kind]string{
	KindGemini:        "GEMINI_API_KEY",
	KindOpenAIWhisper: "OPENAI_API_KEY",
	KindDeepgramNova:  "DEEPGRAM_API_KEY",
}

// Registry resolves a Kind to its configured Provider
type Registry struct {
	providers map[Kind]Provider
}

// NewRegistry creates a registry holding the given providers
func NewRegistry(ps ...Provider) *Registry {
	r := &Registry{providers: make(map[Kind]Provider, len(ps))}
	for _, p := range ps {
		r.Register(p)
	}
	return r
}

// Register adds or replaces the provider for p.Kind()
func (r *Registry) Register(p Provider) {
	r.providers[p.Kind()] = p
}

// Get returns the provider for kind, or a not_configured Error naming the missing credential
func (r *Registry) Get(kind Kind) (Provider, error) {
	if p, ok := r.providers[kind]; ok {
		return p, nil
	}
	return nil, notConfigured(kind, credentialEnv[kind])
}

// Configured lists registered kinds in stable order
func (r *Registry) Configured() []Kind {
	kinds := make([]Kind, 0, len(r.providers))
	for k := range r.providers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// GeminiConfig configures the Gemini adapter
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// RegistryConfig holds the settings of every adapter
type RegistryConfig struct {
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Deepgram DeepgramConfig
}

// BuildRegistry constructs every adapter whose credential is present. Missing
// credentials are logged and surface as not_configured errors on first use.
// The returned generator is nil when Gemini is not configured.
func BuildRegistry(ctx context.Context, cfg RegistryConfig) (*Registry, ContentGenerator, error) {
	reg := NewRegistry()
	var generator ContentGenerator

	client, err := NewGenAIClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.BaseURL)
	switch {
	case err == nil:
		generator = client.Models
		gemini, gerr := NewGemini(generator, cfg.Gemini.Model)
		if gerr != nil {
			return nil, nil, gerr
		}
		reg.Register(gemini)
	case errors.Is(err, ErrMissingCredential):
		logMissing(KindGemini)
	default:
		return nil, nil, err
	}

	if whisper, err := NewOpenAIWhisper(cfg.OpenAI); err == nil {
		reg.Register(whisper)
	} else {
		logMissing(KindOpenAIWhisper)
	}

	if deepgram, err := NewDeepgramNova(cfg.Deepgram); err == nil {
		reg.Register(deepgram)
	} else {
		logMissing(KindDeepgramNova)
	}

	return reg, generator, nil
}

func logMissing(kind Kind) {
	log.Warn().
		Str("provider", string(kind)).
		Str("env", credentialEnv[kind]).
		Msg("transcription provider not configured")
}
