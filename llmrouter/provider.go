package llmrouter

import (
	"context"
	"net/http"
	"strings"
)

// ProviderAdapter is the interface every backend adapter must implement.
type ProviderAdapter interface {
	// Name returns the stable provider identifier (e.g. "deepseek").
	Name() string

	// SupportsModel reports whether this adapter serves the given model
	// identifier. Matching inspects the namespace before the first "/";
	// an identifier without a namespace belongs to no adapter and falls
	// through to the registry default.
	SupportsModel(identifier string) bool

	// NativeModelName translates a full identifier into the model name the
	// backend expects, usually by stripping the namespace prefix. Adapters
	// whose backend wants the full identifier return it unchanged.
	NativeModelName(identifier string) string

	// Query sends one conversation to the backend and returns the
	// normalized response. Failures come back as classified error values
	// (TransportError, BackendError, MalformedResponseError); Query never
	// panics and never affects other in-flight queries.
	Query(ctx context.Context, identifier string, messages []Message) (*Response, error)
}

// namespaceOf returns the portion of an identifier before the first "/", or
// "" when the identifier has no namespace.
func namespaceOf(identifier string) string {
	ns, _, ok := strings.Cut(identifier, "/")
	if !ok {
		return ""
	}
	return ns
}

// stripNamespace returns the portion after the first "/", or the identifier
// unchanged when no namespace is present.
func stripNamespace(identifier string) string {
	_, name, ok := strings.Cut(identifier, "/")
	if !ok {
		return identifier
	}
	return name
}

// AdapterOption configures an adapter at construction time.
type AdapterOption func(*adapterConfig)

type adapterConfig struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points the adapter at an alternate endpoint. Intended for
// tests and proxies; the production endpoints are fixed per backend.
func WithBaseURL(baseURL string) AdapterOption {
	return func(c *adapterConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the adapter's HTTP client.
func WithHTTPClient(client *http.Client) AdapterOption {
	return func(c *adapterConfig) {
		c.httpClient = client
	}
}
