package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/react-agent/internal/httpx"
	"github.com/leofalp/react-agent/providers/ai"
	"github.com/leofalp/react-agent/providers/observability"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
)

// Provider implements [ai.Provider] for OpenAI's Chat Completions API.
// Use [New] to construct a ready-to-use instance.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Provider implements ai.Provider.
var _ ai.Provider = (*Provider)(nil)

// New returns a [Provider] initialized from environment variables.
// It reads OPENAI_API_KEY for authentication and OPENAI_API_BASE_URL for the
// endpoint base (defaulting to https://api.openai.com/v1 when unset).
func New() *Provider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests and returns
// the provider so calls can be chained. Overrides OPENAI_API_KEY.
func (p *Provider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls
// can be chained.
func (p *Provider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHTTPClient replaces the default [http.Client] used for API calls and
// returns the provider so calls can be chained.
func (p *Provider) WithHTTPClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements [ai.Provider] by sending a synchronous chat
// completion request and mapping the first choice into the generic format.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Debug("openai provider preparing request",
			observability.String(observability.AttrLLMProvider, "openai"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
			observability.Int(observability.AttrRequestToolsCount, len(request.Tools)),
		)
	}

	// Guard against missing credentials before making a network call.
	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	headers := []httpx.Header{httpx.BearerAuth(p.apiKey)}

	resp, err := httpx.PostJSON[chatCompletionResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, headers, requestFromGeneric(request))
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in OpenAI response")
	}

	response := responseToGeneric(*resp)

	if observer != nil {
		observer.Debug("openai provider received response",
			observability.String(observability.AttrResponseFinishReason, response.FinishReason),
			observability.Int(observability.AttrResponseToolCalls, len(response.ToolCalls)),
		)
	}

	return response, nil
}

// IsStopMessage reports whether the response is terminal. OpenAI signals a
// pending tool round-trip with finish_reason "tool_calls"; "stop", "length"
// and "content_filter" end the loop.
func (p *Provider) IsStopMessage(response *ai.ChatResponse) bool {
	if response == nil {
		return true
	}
	if response.FinishReason == "tool_calls" {
		return false
	}
	if len(response.ToolCalls) > 0 {
		return false
	}
	return true
}
