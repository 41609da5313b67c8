package reactagent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/tool/search"
)

// recordingProvider answers every request with a fixed stop message and
// records what it was asked.
type recordingProvider struct {
	requests []ai.ChatRequest
}

func (p *recordingProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	p.requests = append(p.requests, request)
	return &ai.ChatResponse{Content: "ok", FinishReason: "stop"}, nil
}

func (p *recordingProvider) IsStopMessage(response *ai.ChatResponse) bool {
	return len(response.ToolCalls) == 0
}

func (p *recordingProvider) WithAPIKey(string) ai.Provider           { return p }
func (p *recordingProvider) WithBaseURL(string) ai.Provider          { return p }
func (p *recordingProvider) WithHTTPClient(*http.Client) ai.Provider { return p }

func TestNew_MissingAnthropicKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := New()
	if err == nil {
		t.Fatal("expected error when ANTHROPIC_API_KEY is unset")
	}
	if !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("error should name the missing variable, got %q", err.Error())
	}
}

func TestNew_MissingOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := New(WithModel("gpt-4o"))
	if err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is unset")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing variable, got %q", err.Error())
	}
}

func TestNew_BothVendors(t *testing.T) {
	tests := []struct {
		name  string
		model string
	}{
		{name: "anthropic", model: "claude-sonnet-4-5"},
		{name: "openai", model: "gpt-4o"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			agent, err := New(WithModel(testCase.model), WithAPIKey("test-key"))
			if err != nil {
				t.Fatalf("unexpected factory error: %v", err)
			}
			if agent == nil {
				t.Fatal("expected a constructed agent")
			}
		})
	}
}

func TestNew_UnsupportedModel(t *testing.T) {
	_, err := New(WithModel("mistral-large"))
	if err == nil {
		t.Fatal("expected error for unsupported model prefix")
	}
	if !strings.Contains(err.Error(), "mistral-large") {
		t.Errorf("error should name the model, got %q", err.Error())
	}
}

func TestNew_DefaultsAppliedToRequests(t *testing.T) {
	provider := &recordingProvider{}

	agent, err := New(WithProvider(provider))
	if err != nil {
		t.Fatalf("unexpected factory error: %v", err)
	}

	if _, err := agent.Execute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(provider.requests))
	}
	request := provider.requests[0]
	if request.Model != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, request.Model)
	}
	if request.SystemPrompt != DefaultSystemPrompt {
		t.Errorf("expected default system prompt, got %q", request.SystemPrompt)
	}

	// The default tool set must be advertised: search, calculator, webfetch.
	names := make([]string, 0, len(request.Tools))
	for _, description := range request.Tools {
		names = append(names, description.Name)
	}
	want := []string{"search", "calculator", "webfetch"}
	if len(names) != len(want) {
		t.Fatalf("expected tools %v, got %v", want, names)
	}
	for index := range want {
		if names[index] != want[index] {
			t.Fatalf("expected tools %v, got %v", want, names)
		}
	}
}

func TestNew_WithoutDefaultTools(t *testing.T) {
	provider := &recordingProvider{}

	agent, err := New(WithProvider(provider), WithoutDefaultTools())
	if err != nil {
		t.Fatalf("unexpected factory error: %v", err)
	}

	if _, err := agent.Execute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if len(provider.requests[0].Tools) != 0 {
		t.Errorf("expected no tools advertised, got %+v", provider.requests[0].Tools)
	}
}

func TestAgent_WeatherQueryAgainstStub(t *testing.T) {
	// Stub the Anthropic Messages API: first a tool_use response asking for
	// the search tool, then a terminal text answer.
	var requestBodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requestBodies = append(requestBodies, string(body))
		w.Header().Set("Content-Type", "application/json")

		if len(requestBodies) == 1 {
			fmt.Fprint(w, `{
				"id": "msg_1",
				"type": "message",
				"role": "assistant",
				"model": "claude-sonnet-4-5",
				"content": [
					{"type": "tool_use", "id": "toolu_1", "name": "search", "input": {"query": "weather in San Francisco"}}
				],
				"stop_reason": "tool_use",
				"usage": {"input_tokens": 10, "output_tokens": 5}
			}`)
			return
		}
		fmt.Fprint(w, `{
			"id": "msg_2",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5",
			"content": [
				{"type": "text", "text": "It is 60 degrees and foggy in SF."}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 20, "output_tokens": 10}
		}`)
	}))
	defer server.Close()

	agent, err := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("unexpected factory error: %v", err)
	}

	response, err := agent.Execute(context.Background(), "What is the weather in SF?")
	if err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if response.Content != "It is 60 degrees and foggy in SF." {
		t.Errorf("unexpected final content: %q", response.Content)
	}

	if len(requestBodies) != 2 {
		t.Fatalf("expected 2 API calls, got %d", len(requestBodies))
	}

	// The second call must feed the canned search result back as a
	// tool_result block linked to the tool_use ID.
	second := requestBodies[1]
	if !strings.Contains(second, "tool_result") || !strings.Contains(second, "toolu_1") {
		t.Errorf("second request missing tool_result block: %s", second)
	}
	if !strings.Contains(second, search.ResultFoggy) {
		t.Errorf("second request should carry the foggy search result: %s", second)
	}
}
