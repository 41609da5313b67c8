package anthropic

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
	// defaultBaseURL is the canonical base URL for Anthropic's Messages API.
	defaultBaseURL = "https://api.anthropic.com/v1"

	// messagesEndpoint is the path for the Messages API endpoint.
	messagesEndpoint = "/messages"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses it to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"
)

// Provider implements [ai.Provider] for Anthropic's Messages API.
// Use [New] to construct a ready-to-use instance.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Ensure Provider implements ai.Provider.
var _ ai.Provider = (*Provider)(nil)

// New returns a [Provider] initialized from environment variables.
// It reads ANTHROPIC_API_KEY for authentication and ANTHROPIC_API_BASE_URL
// for the endpoint base (defaulting to https://api.anthropic.com/v1 when
// unset). Use [Provider.WithAPIKey] and [Provider.WithBaseURL] to override
// these values after construction.
func New() *Provider {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key used for authenticating requests and returns
// the provider so calls can be chained. Overrides ANTHROPIC_API_KEY.
func (p *Provider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL and returns the provider so calls
// can be chained. Use this when targeting a proxy or a test server.
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

// buildHeaders constructs the headers required on every Anthropic request.
// x-api-key carries the credential (Anthropic does not use Bearer tokens)
// and anthropic-version pins the wire format.
func (p *Provider) buildHeaders() []httpx.Header {
	return []httpx.Header{
		{Key: "x-api-key", Value: p.apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}
}

// SendMessage implements [ai.Provider] by sending a synchronous request to
// the Messages API and mapping the response into the generic format. It
// returns an error if the API key is unset, the HTTP request fails, or the
// response cannot be decoded.
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Debug("anthropic provider preparing request",
			observability.String(observability.AttrLLMProvider, "anthropic"),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
			observability.Int(observability.AttrRequestToolsCount, len(request.Tools)),
		)
	}

	// Guard against missing credentials before making a network call.
	if p.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	anthropicReq, err := requestToAnthropic(request)
	if err != nil {
		return nil, fmt.Errorf("failed to build Anthropic request: %w", err)
	}

	resp, err := httpx.PostJSON[anthropicResponse](ctx, p.client, p.baseURL+messagesEndpoint, p.buildHeaders(), anthropicReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	if len(resp.Content) == 0 && resp.StopReason == "" {
		return nil, fmt.Errorf("empty response from Anthropic API")
	}

	response := responseToGeneric(*resp)

	if observer != nil {
		observer.Debug("anthropic provider received response",
			observability.String(observability.AttrResponseFinishReason, response.FinishReason),
			observability.Int(observability.AttrResponseToolCalls, len(response.ToolCalls)),
			observability.Int(observability.AttrUsageTotalTokens, response.Usage.TotalTokens),
		)
	}

	return response, nil
}

// IsStopMessage reports whether the response is terminal. Anthropic signals
// a pending tool round-trip with stop_reason "tool_use"; everything else
// ("end_turn", "max_tokens", "stop_sequence") ends the loop.
func (p *Provider) IsStopMessage(response *ai.ChatResponse) bool {
	if response == nil {
		return true
	}
	if response.FinishReason == "tool_use" {
		return false
	}
	if len(response.ToolCalls) > 0 {
		return false
	}
	return true
}
