package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned by NewProvider when no key was supplied.
var ErrMissingAPIKey = errors.New("missing api key")

// Settings describes the provider used for a request.
type Settings struct {
	Type    string
	APIKey  string
	Model   string
	BaseURL string

	// Temperature nil means DefaultTemperature; an explicit 0 is kept.
	Temperature *float64

	// HTTPClient overrides the transport; nil uses the SDK default.
	HTTPClient *http.Client
}

func NewProvider(s Settings) (LLM, error) {
	if s.Type == "" {
		s.Type = "openai"
	}

	switch s.Type {
	case "openai":
		if s.APIKey == "" {
			return nil, fmt.Errorf("openai provider: %w", ErrMissingAPIKey)
		}
		model := s.Model
		if model == "" {
			model = DefaultModel
		}
		temperature := DefaultTemperature
		if s.Temperature != nil {
			temperature = *s.Temperature
		}
		return NewOpenAIProvider(s.APIKey, model, temperature, s.BaseURL, s.HTTPClient), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", s.Type)
	}
}
