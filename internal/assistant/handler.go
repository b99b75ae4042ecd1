package assistant

import (
	"context"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"assister/internal/expert"
	"assister/internal/llm"
)

// Config is everything the handler needs to reach the model. The API key is
// injected here rather than looked up from the environment at call time.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature *float64
	BaseURL     string
	HTTPClient  *http.Client
}

// Handler forwards a question plus the persona's system prompt to the model.
// It holds no mutable state and is safe for concurrent use.
type Handler struct {
	cfg     Config
	factory llm.Factory
	log     *slog.Logger
}

func New(cfg Config, factory llm.Factory, logger *slog.Logger) *Handler {
	if factory == nil {
		factory = llm.NewProvider
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, factory: factory, log: logger}
}

// Answer returns the model's text verbatim. Errors are either
// ErrMissingCredential or *UpstreamError.
func (h *Handler) Answer(ctx context.Context, userText string, mode expert.Mode) (string, error) {
	if h.cfg.APIKey == "" {
		h.log.Warn("openai api key is not configured")
		return "", ErrMissingCredential
	}

	provider, err := h.factory(llm.Settings{
		Type:        h.cfg.Provider,
		APIKey:      h.cfg.APIKey,
		Model:       h.cfg.Model,
		Temperature: h.cfg.Temperature,
		BaseURL:     h.cfg.BaseURL,
		HTTPClient:  h.cfg.HTTPClient,
	})
	if err != nil {
		upErr := newUpstreamError(err)
		h.log.Error("failed to build provider", "kind", upErr.Kind.String(), "error", err)
		return "", upErr
	}

	h.log.Debug("asking expert",
		"mode", mode.String(),
		"provider", provider.Name(),
		"model", h.cfg.Model,
		"input_chars", utf8.RuneCountInString(userText),
	)

	answer, err := provider.Query(ctx, expert.SystemPrompt(mode), userText)
	if err != nil {
		upErr := newUpstreamError(err)
		h.log.Warn("chat completion failed", "mode", mode.String(), "kind", upErr.Kind.String(), "error", err)
		return "", upErr
	}

	h.log.Debug("expert answered", "mode", mode.String(), "answer_chars", utf8.RuneCountInString(answer))
	return answer, nil
}

// Reply is Answer collapsed to a single display string: either the model's
// text or a warning line.
func (h *Handler) Reply(ctx context.Context, userText string, mode expert.Mode) string {
	answer, err := h.Answer(ctx, userText, mode)
	if err != nil {
		return Display(err)
	}
	return answer
}
