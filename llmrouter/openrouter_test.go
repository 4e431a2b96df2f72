package llmrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenRouterQuery(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Paris.","reasoning_details":[{"type":"reasoning.text","text":"capital question"}]}}]}`)
	}))
	defer srv.Close()

	adapter := NewOpenRouterAdapter("test-key", WithBaseURL(srv.URL))
	messages := []Message{
		SystemMessage("You are terse."),
		UserMessage("What is the capital of France?"),
	}
	resp, err := adapter.Query(context.Background(), "openai/gpt-test", messages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("expected Authorization %q, got %q", "Bearer test-key", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected Content-Type %q, got %q", "application/json", gotContentType)
	}

	// The wire model field carries the full namespaced identifier.
	if gotBody.Model != "openai/gpt-test" {
		t.Errorf("expected model %q, got %q", "openai/gpt-test", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != RoleSystem || gotBody.Messages[1].Content != "What is the capital of France?" {
		t.Errorf("messages not forwarded verbatim: %+v", gotBody.Messages)
	}

	if resp.Content != "Paris." {
		t.Errorf("expected content %q, got %q", "Paris.", resp.Content)
	}
	wantReasoning := `[{"type":"reasoning.text","text":"capital question"}]`
	if string(resp.ReasoningDetails) != wantReasoning {
		t.Errorf("expected reasoning %s, got %s", wantReasoning, resp.ReasoningDetails)
	}
}

func TestOpenRouterQueryNoReasoning(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"absent", `{"choices":[{"message":{"content":"hi"}}]}`},
		{"null", `{"choices":[{"message":{"content":"hi","reasoning_details":null}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			adapter := NewOpenRouterAdapter("test-key", WithBaseURL(srv.URL))
			resp, err := adapter.Query(context.Background(), "openai/gpt-test", []Message{UserMessage("hi")})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.ReasoningDetails != nil {
				t.Errorf("expected nil reasoning, got %s", resp.ReasoningDetails)
			}
		})
	}
}

func TestOpenRouterQueryBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := NewOpenRouterAdapter("test-key", WithBaseURL(srv.URL))
	_, err := adapter.Query(context.Background(), "openai/gpt-test", []Message{UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
	berr, ok := err.(*BackendError)
	if !ok {
		t.Fatalf("expected BackendError, got %T", err)
	}
	if berr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, berr.StatusCode)
	}
}

func TestOpenRouterQueryMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `upstream proxy error`},
		{"no choices", `{"choices":[]}`},
		{"no message", `{"choices":[{}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			adapter := NewOpenRouterAdapter("test-key", WithBaseURL(srv.URL))
			_, err := adapter.Query(context.Background(), "openai/gpt-test", []Message{UserMessage("hi")})
			if err == nil {
				t.Fatal("expected error for malformed response")
			}
			if _, ok := err.(*MalformedResponseError); !ok {
				t.Errorf("expected MalformedResponseError, got %T", err)
			}
		})
	}
}

func TestOpenRouterQueryTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	adapter := NewOpenRouterAdapter("test-key", WithBaseURL(url))
	_, err := adapter.Query(context.Background(), "openai/gpt-test", []Message{UserMessage("hi")})
	if err == nil {
		t.Fatal("expected error for unreachable backend")
	}
	if _, ok := err.(*TransportError); !ok {
		t.Errorf("expected TransportError, got %T", err)
	}
}
