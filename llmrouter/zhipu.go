package llmrouter

const zhipuBaseURL = "https://open.bigmodel.cn/api/paas/v4"

// NewZhipuAdapter creates the adapter for the ZhipuAI (GLM series) API.
// Identifiers under "zhipu/" or "glm/" route here, matched case
// insensitively. The API reports no reasoning output.
func NewZhipuAdapter(apiKey string, opts ...AdapterOption) ProviderAdapter {
	return newCompatAdapter(compatProfile{
		name:     "zhipu",
		prefixes: []string{"zhipu", "glm"},
		foldCase: true,
		baseURL:  zhipuBaseURL,
	}, apiKey, opts...)
}
