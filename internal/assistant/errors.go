package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"assister/internal/llm"
)

const (
	warningGlyph = "⚠️"

	// MissingCredentialMessage is shown when no API key is configured.
	MissingCredentialMessage = warningGlyph + " OpenAI APIキーが設定されていません。環境変数OPENAI_API_KEYを設定してください。"
)

// ErrMissingCredential means no API key was injected; no request was sent.
var ErrMissingCredential = errors.New("openai api key is not set")

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAuth
	KindRateLimit
	KindBadRequest
	KindServer
	KindNetwork
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindBadRequest:
		return "bad_request"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// UpstreamError wraps any failure raised while building or executing the
// chat-completion call.
type UpstreamError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func newUpstreamError(err error) *UpstreamError {
	return &UpstreamError{
		Kind:    classify(err),
		Message: err.Error(),
		Err:     err,
	}
}

func classify(err error) ErrorKind {
	if errors.Is(err, llm.ErrNoChoices) {
		return KindMalformed
	}

	switch code := llm.StatusCode(err); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case code >= 500:
		return KindServer
	case code >= 400:
		return KindBadRequest
	case code != 0:
		return KindUnknown
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return KindAuth
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnknown
}

// Display renders an Answer error as the single line shown to the user.
func Display(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrMissingCredential) {
		return MissingCredentialMessage
	}

	msg := err.Error()
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		msg = upErr.Message
	}
	return fmt.Sprintf("%s エラーが発生しました: %s", warningGlyph, msg)
}
