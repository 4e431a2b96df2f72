package llmrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const openRouterAPIURL = "https://openrouter.ai/api/v1/chat/completions"

// openRouterPrefixes are the upstream model families OpenRouter serves.
// Matching is exact and case sensitive.
var openRouterPrefixes = []string{
	"openai",
	"anthropic",
	"google",
	"meta-llama",
	"x-ai",
	"mistralai",
	"microsoft",
	"cohere",
	"perplexity",
	"qwen",
}

// openRouterAdapter fronts the OpenRouter aggregation API. It speaks the
// chat completions protocol directly over net/http because its responses
// carry a reasoning_details payload of backend-defined shape that must pass
// through untouched.
type openRouterAdapter struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewOpenRouterAdapter creates the adapter for the OpenRouter API, the
// broad backend that serves many upstream model families behind one
// endpoint. It is the usual registry default.
func NewOpenRouterAdapter(apiKey string, opts ...AdapterOption) ProviderAdapter {
	cfg := adapterConfig{baseURL: openRouterAPIURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{}
	}

	return &openRouterAdapter{
		apiKey: apiKey,
		apiURL: cfg.baseURL,
		client: client,
	}
}

func (a *openRouterAdapter) Name() string {
	return "openrouter"
}

func (a *openRouterAdapter) SupportsModel(identifier string) bool {
	ns := namespaceOf(identifier)
	if ns == "" {
		return false
	}
	for _, prefix := range openRouterPrefixes {
		if ns == prefix {
			return true
		}
	}
	return false
}

// NativeModelName returns the identifier unchanged; OpenRouter expects the
// full namespaced identifier in the model field.
func (a *openRouterAdapter) NativeModelName(identifier string) string {
	return identifier
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// chatChoice decodes choices[i]. Message is a pointer so an absent message
// object is distinguishable from an empty one.
type chatChoice struct {
	Message *struct {
		Content          string          `json:"content"`
		ReasoningDetails json.RawMessage `json:"reasoning_details"`
	} `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

func (a *openRouterAdapter) Query(ctx context.Context, identifier string, messages []Message) (*Response, error) {
	body, err := json.Marshal(chatRequest{
		Model:    a.NativeModelName(identifier),
		Messages: messages,
	})
	if err != nil {
		return nil, a.fail(identifier, transportError(a.Name(), identifier, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, a.fail(identifier, transportError(a.Name(), identifier, err))
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, a.fail(identifier, transportError(a.Name(), identifier, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, a.fail(identifier, backendError(a.Name(), identifier, resp.StatusCode, nil))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, a.fail(identifier, transportError(a.Name(), identifier, err))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, a.fail(identifier, malformedResponseError(a.Name(), identifier, "response is not valid JSON"))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil {
		return nil, a.fail(identifier, malformedResponseError(a.Name(), identifier, "response has no message"))
	}

	msg := parsed.Choices[0].Message
	return &Response{
		Content:          msg.Content,
		ReasoningDetails: normalizeRaw(msg.ReasoningDetails),
	}, nil
}

func (a *openRouterAdapter) fail(model string, err error) error {
	zap.L().Error("provider query failed",
		zap.String("provider", a.Name()),
		zap.String("model", model),
		zap.Error(err))
	return err
}
