package llmrouter

const moonshotBaseURL = "https://api.moonshot.cn/v1"

// NewMoonshotAdapter creates the adapter for the Moonshot (Kimi) API.
// Identifiers under "moonshot/" or "kimi/" route here, matched case
// insensitively. The API reports no reasoning output.
func NewMoonshotAdapter(apiKey string, opts ...AdapterOption) ProviderAdapter {
	return newCompatAdapter(compatProfile{
		name:     "moonshot",
		prefixes: []string{"moonshot", "kimi"},
		foldCase: true,
		baseURL:  moonshotBaseURL,
	}, apiKey, opts...)
}
