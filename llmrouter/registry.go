package llmrouter

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/martinemde/llmcouncil/config"
)

// Registry holds the active provider adapters and resolves model identifiers
// to the adapter that serves them. Build it completely before dispatching;
// it is immutable and safe for concurrent use once queries begin.
type Registry struct {
	adapters []ProviderAdapter
	byName   map[string]ProviderAdapter
	fallback ProviderAdapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]ProviderAdapter)}
}

// Register adds an adapter. Adapter names are unique within a registry.
func (r *Registry) Register(adapter ProviderAdapter) error {
	name := adapter.Name()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("provider %q is already registered", name)
	}
	r.byName[name] = adapter
	r.adapters = append(r.adapters, adapter)
	return nil
}

// RegisterDefault adds an adapter and names it the fallback for identifiers
// no adapter claims. The fallback is only ever this explicit choice, never
// inferred from registration order, and a registry has at most one.
func (r *Registry) RegisterDefault(adapter ProviderAdapter) error {
	if r.fallback != nil {
		return fmt.Errorf("default provider %q is already registered", r.fallback.Name())
	}
	if err := r.Register(adapter); err != nil {
		return err
	}
	r.fallback = adapter
	return nil
}

// Resolve returns the adapter that serves the given model identifier: the
// first registered adapter claiming it, else the default adapter, else a
// NoProviderError. Resolution is deterministic for a fixed registration set.
func (r *Registry) Resolve(identifier string) (ProviderAdapter, error) {
	for _, adapter := range r.adapters {
		if adapter.SupportsModel(identifier) {
			return adapter, nil
		}
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, &NoProviderError{Model: identifier}
}

// Providers returns the registered adapter names in registration order.
func (r *Registry) Providers() []string {
	names := make([]string, len(r.adapters))
	for i, adapter := range r.adapters {
		names[i] = adapter.Name()
	}
	return names
}

// NewRegistryFromConfig builds a registry from whichever credentials are
// present; a backend without a credential is never a routing candidate.
// OpenRouter, when credentialed, is the explicit default since it serves the
// broadest set of model families.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	r := NewRegistry()

	if cfg.OpenRouterAPIKey != "" {
		_ = r.RegisterDefault(NewOpenRouterAdapter(cfg.OpenRouterAPIKey))
	}
	if cfg.DeepSeekAPIKey != "" {
		_ = r.Register(NewDeepSeekAdapter(cfg.DeepSeekAPIKey))
	}
	if cfg.ZhipuAPIKey != "" {
		_ = r.Register(NewZhipuAdapter(cfg.ZhipuAPIKey))
	}
	if cfg.MoonshotAPIKey != "" {
		_ = r.Register(NewMoonshotAdapter(cfg.MoonshotAPIKey))
	}

	if len(r.adapters) == 0 {
		zap.L().Warn("no provider credentials found; all queries will fail")
	} else {
		zap.L().Info("provider registry initialized", zap.Strings("providers", r.Providers()))
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, built lazily from the
// environment on first use and fixed for the process lifetime.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			zap.L().Error("config load failed; starting with no providers", zap.Error(err))
			defaultRegistry = NewRegistry()
			return
		}
		defaultRegistry = NewRegistryFromConfig(cfg)
	})
	return defaultRegistry
}
