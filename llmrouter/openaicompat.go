package llmrouter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// compatProfile describes one backend speaking the OpenAI-compatible chat
// completions protocol: its routing namespaces, its API root, and whether it
// reports chain-of-thought in the reasoning_content message field.
type compatProfile struct {
	name      string
	prefixes  []string
	foldCase  bool
	baseURL   string
	reasoning bool
}

// compatAdapter implements ProviderAdapter for OpenAI-compatible backends.
// DeepSeek, Zhipu, and Moonshot differ only in their profile.
type compatAdapter struct {
	profile compatProfile
	client  *openai.Client
}

func newCompatAdapter(profile compatProfile, apiKey string, opts ...AdapterOption) *compatAdapter {
	cfg := adapterConfig{baseURL: profile.baseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	cc := openai.DefaultConfig(apiKey)
	cc.BaseURL = cfg.baseURL
	if cfg.httpClient != nil {
		cc.HTTPClient = cfg.httpClient
	}

	return &compatAdapter{
		profile: profile,
		client:  openai.NewClientWithConfig(cc),
	}
}

func (a *compatAdapter) Name() string {
	return a.profile.name
}

func (a *compatAdapter) SupportsModel(identifier string) bool {
	ns := namespaceOf(identifier)
	if ns == "" {
		return false
	}
	if a.profile.foldCase {
		ns = strings.ToLower(ns)
	}
	for _, prefix := range a.profile.prefixes {
		if ns == prefix {
			return true
		}
	}
	return false
}

func (a *compatAdapter) NativeModelName(identifier string) string {
	return stripNamespace(identifier)
}

func (a *compatAdapter) Query(ctx context.Context, identifier string, messages []Message) (*Response, error) {
	req := openai.ChatCompletionRequest{
		Model:    a.NativeModelName(identifier),
		Messages: make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, a.fail(identifier, a.classify(identifier, err))
	}

	if len(resp.Choices) == 0 {
		return nil, a.fail(identifier, malformedResponseError(a.profile.name, identifier, "response has no choices"))
	}

	// Choice.Message is a value type, so an absent message decodes to the
	// zero value. A real reply always carries at least a role.
	msg := resp.Choices[0].Message
	if msg.Role == "" && msg.Content == "" {
		return nil, a.fail(identifier, malformedResponseError(a.profile.name, identifier, "response has no message"))
	}

	out := &Response{Content: msg.Content}
	if a.profile.reasoning && msg.ReasoningContent != "" {
		raw, _ := json.Marshal(msg.ReasoningContent)
		out.ReasoningDetails = raw
	}
	return out, nil
}

// classify maps a go-openai error onto the router's failure kinds: any
// HTTP-status-bearing error is a backend failure, everything else transport.
func (a *compatAdapter) classify(model string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return backendError(a.profile.name, model, apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return backendError(a.profile.name, model, reqErr.HTTPStatusCode, err)
	}

	return transportError(a.profile.name, model, err)
}

func (a *compatAdapter) fail(model string, err error) error {
	zap.L().Error("provider query failed",
		zap.String("provider", a.profile.name),
		zap.String("model", model),
		zap.Error(err))
	return err
}
