package llmrouter

// deepseekBaseURL is the OpenAI-compatible API root; the client appends the
// chat completions path.
const deepseekBaseURL = "https://api.deepseek.com"

// NewDeepSeekAdapter creates the adapter for the DeepSeek API. Identifiers
// under the "deepseek/" namespace route here; the reasoner models report
// chain-of-thought in the reasoning_content field, surfaced on the response
// as opaque reasoning details.
func NewDeepSeekAdapter(apiKey string, opts ...AdapterOption) ProviderAdapter {
	return newCompatAdapter(compatProfile{
		name:      "deepseek",
		prefixes:  []string{"deepseek"},
		baseURL:   deepseekBaseURL,
		reasoning: true,
	}, apiKey, opts...)
}
