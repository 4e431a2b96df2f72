// Package llmrouter routes chat-style queries to independent LLM backend
// services by model identifier, normalizes their heterogeneous wire formats
// into one response contract, and fans queries out to many models
// concurrently with per-model failure isolation.
//
// # Architecture
//
// The package has three layers:
//
//   - Provider adapters: one per backend (OpenRouter, DeepSeek, Zhipu,
//     Moonshot), each implementing the ProviderAdapter contract for its
//     endpoint, payload shape, and response-field mapping
//   - Registry: holds the adapters whose credentials are available and
//     resolves a model identifier to the adapter that serves it, with an
//     explicitly named default for identifiers nothing claims
//   - Dispatch: QueryModel executes one resolved query under a timeout;
//     QueryModelsParallel runs one query per model concurrently and
//     collects per-model outcomes
//
// # Model identifiers
//
// Identifiers take the form "namespace/name" (for example
// "deepseek/deepseek-chat"). The namespace selects a backend; the name is
// what the backend receives, except for OpenRouter, which receives the full
// identifier. An identifier with no "/" resolves to the default adapter.
//
// # Quick start
//
// Using the process-wide registry, built lazily from the environment:
//
//	resp, err := llmrouter.QueryModel(ctx, "deepseek/deepseek-chat",
//	    []llmrouter.Message{llmrouter.UserMessage("Hello")}, 0)
//
// Fan-out across several models, collecting one outcome per model:
//
//	results := llmrouter.QueryModelsParallel(ctx,
//	    []string{"openai/gpt-5.1", "deepseek/deepseek-chat"},
//	    []llmrouter.Message{llmrouter.UserMessage("Hello")})
//	for model, resp := range results {
//	    if resp == nil {
//	        // that model failed; the others are unaffected
//	        continue
//	    }
//	    fmt.Println(model, resp.Content)
//	}
//
// Building a registry by hand:
//
//	reg := llmrouter.NewRegistry()
//	_ = reg.RegisterDefault(llmrouter.NewOpenRouterAdapter(key))
//	_ = reg.Register(llmrouter.NewDeepSeekAdapter(deepseekKey))
//
// # Failure model
//
// A query failure is data, not control flow. Transport errors, non-2xx
// statuses, and malformed response bodies are classified into typed errors
// (TransportError, BackendError, MalformedResponseError), logged at the
// adapter, and surfaced as an error value from QueryModel or as a nil map
// entry from QueryModelsParallel. One model's failure never cancels or
// delays a sibling query in the same batch.
package llmrouter
