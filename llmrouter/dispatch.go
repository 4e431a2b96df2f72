package llmrouter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultQueryTimeout bounds a single backend query when the caller does not
// supply a timeout of its own.
const DefaultQueryTimeout = 120 * time.Second

// QueryModel resolves the model identifier and executes one query against
// the serving backend. A timeout of zero or less applies
// DefaultQueryTimeout. The returned error is one of the classified failure
// kinds and reports an outcome, never an exceptional condition: callers that
// only care whether a result exists may treat any error as "no result".
func (r *Registry) QueryModel(ctx context.Context, model string, messages []Message, timeout time.Duration) (*Response, error) {
	adapter, err := r.Resolve(model)
	if err != nil {
		zap.L().Warn("no provider found for model", zap.String("model", model))
		observeQuery("none", outcomeUnroutable, 0)
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := adapter.Query(qctx, model, messages)
	if err != nil {
		observeQuery(adapter.Name(), outcomeFailure, time.Since(start))
		return nil, err
	}
	observeQuery(adapter.Name(), outcomeSuccess, time.Since(start))
	return resp, nil
}

// QueryModelsParallel queries every model concurrently and returns one map
// entry per requested identifier, keyed by that identifier. A nil value
// marks a model whose query failed; the batch itself never fails. All
// queries start before any is waited on, and one model's failure or
// slowness affects only its own entry. Duplicate identifiers run as
// independent queries, with the later input position's outcome kept.
func (r *Registry) QueryModelsParallel(ctx context.Context, models []string, messages []Message) map[string]*Response {
	results := make([]*Response, len(models))

	var wg sync.WaitGroup
	for i, model := range models {
		wg.Add(1)
		go func(idx int, m string) {
			defer wg.Done()
			resp, err := r.QueryModel(ctx, m, messages, 0)
			if err != nil {
				// Already classified and logged; the nil slot is the
				// caller-visible failure marker.
				return
			}
			results[idx] = resp
		}(i, model)
	}
	wg.Wait()

	out := make(map[string]*Response, len(models))
	for i, model := range models {
		out[model] = results[i]
	}
	return out
}

// QueryModel routes one query through the process-wide default registry.
func QueryModel(ctx context.Context, model string, messages []Message, timeout time.Duration) (*Response, error) {
	return DefaultRegistry().QueryModel(ctx, model, messages, timeout)
}

// QueryModelsParallel fans a query out to several models through the
// process-wide default registry.
func QueryModelsParallel(ctx context.Context, models []string, messages []Message) map[string]*Response {
	return DefaultRegistry().QueryModelsParallel(ctx, models, messages)
}
