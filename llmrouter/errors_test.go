package llmrouter

import (
	"errors"
	"testing"
)

func TestNoProviderErrorMessage(t *testing.T) {
	err := &NoProviderError{Model: "gpt-test"}
	want := "no provider found for model: gpt-test"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestProviderErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"transport",
			transportError("deepseek", "deepseek/deepseek-chat", errors.New("connection refused")),
			"[deepseek] deepseek/deepseek-chat: request failed: connection refused",
		},
		{
			"malformed",
			malformedResponseError("openrouter", "openai/gpt-test", "response has no message"),
			"[openrouter] openai/gpt-test: response has no message",
		},
		{
			"backend",
			backendError("openrouter", "openai/gpt-test", 503, nil),
			"[openrouter] openai/gpt-test: backend returned status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := transportError("deepseek", "deepseek/deepseek-chat", cause)
	if !errors.Is(err, cause) {
		t.Error("expected transport error to unwrap to its cause")
	}
	if err.Provider != "deepseek" || err.Model != "deepseek/deepseek-chat" {
		t.Errorf("unexpected provider/model: %q %q", err.Provider, err.Model)
	}
}

func TestBackendErrorStatus(t *testing.T) {
	// Callers see the error interface and match the concrete kind.
	var err error = backendError("zhipu", "zhipu/glm-4.6", 429, errors.New("too many requests"))

	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError, got %T", err)
	}
	if berr.StatusCode != 429 {
		t.Errorf("expected status 429, got %d", berr.StatusCode)
	}
}
