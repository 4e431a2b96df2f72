package llmrouter

import "fmt"

// NoProviderError reports that no registered adapter claims a model
// identifier and no default adapter is configured.
type NoProviderError struct {
	Model string
}

func (e *NoProviderError) Error() string {
	return fmt.Sprintf("no provider found for model: %s", e.Model)
}

// ProviderError is the base error type for failures while querying a backend.
type ProviderError struct {
	Provider string
	Model    string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Provider, e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Model, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Concrete failure kinds. Callers of QueryModel receive exactly one of these
// (or NoProviderError); QueryModelsParallel collapses all of them to a nil
// map entry.

// TransportError covers connection, DNS, TLS, and timeout failures where no
// HTTP response was received.
type TransportError struct{ ProviderError }

// MalformedResponseError covers 2xx responses whose body is not the expected
// chat completion shape.
type MalformedResponseError struct{ ProviderError }

// BackendError covers non-2xx responses from the backend.
type BackendError struct {
	ProviderError
	StatusCode int
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("[%s] %s: backend returned status %d", e.Provider, e.Model, e.StatusCode)
}

func transportError(provider, model string, cause error) *TransportError {
	return &TransportError{ProviderError{
		Provider: provider,
		Model:    model,
		Message:  "request failed",
		Cause:    cause,
	}}
}

func malformedResponseError(provider, model, message string) *MalformedResponseError {
	return &MalformedResponseError{ProviderError{
		Provider: provider,
		Model:    model,
		Message:  message,
	}}
}

func backendError(provider, model string, status int, cause error) *BackendError {
	return &BackendError{
		ProviderError: ProviderError{
			Provider: provider,
			Model:    model,
			Message:  "backend error",
			Cause:    cause,
		},
		StatusCode: status,
	}
}
