package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/react-agent/providers/tool"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value.
	DefaultUserAgent = "react-agent-webfetch/1.0"
	// MaxBodySize caps the response body at 10MB.
	MaxBodySize = 10 * 1024 * 1024
)

// httpClient is shared by all Fetch calls; per-request deadlines come from
// the context, not the client.
var httpClient = &http.Client{}

// New returns a [tool.Tool] that fetches web pages and converts their HTML
// content to Markdown. Partial URLs are normalized by prepending "https://".
func New() *tool.Tool[Input, Output] {
	return tool.New(
		"webfetch",
		Fetch,
		tool.WithDescription("Fetches a web page and converts its HTML content to Markdown. Accepts partial URLs by adding an https:// prefix. Returns the final URL after redirects and the page content as Markdown."),
	)
}

// Fetch retrieves the page at req.URL and returns its content as Markdown.
// The request timeout comes from req.TimeoutSeconds when set, otherwise
// [DefaultTimeout]. Bodies beyond [MaxBodySize] are rejected. Returns an
// error for empty URLs, non-200 statuses, oversized bodies, conversion
// failures, or context cancellation.
func Fetch(ctx context.Context, req Input) (Output, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return Output{}, fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	timeout := DefaultTimeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Output{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", DefaultUserAgent)

	res, err := httpClient.Do(httpReq)
	if err != nil {
		return Output{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Output{}, fmt.Errorf("unexpected status %d fetching %s", res.StatusCode, url)
	}

	// Read one byte past the cap to detect oversized bodies.
	body, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return Output{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return Output{}, fmt.Errorf("response body exceeds %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return Output{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return Output{
		URL:      res.Request.URL.String(),
		Markdown: strings.TrimSpace(markdown),
	}, nil
}

// Input holds the URL to fetch and an optional per-request timeout.
type Input struct {
	URL            string `json:"url" jsonschema:"description=The URL of the web page to fetch,required"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"description=Optional request timeout in seconds"`
}

// Output carries the final URL after redirects and the page as Markdown.
type Output struct {
	URL      string `json:"url" jsonschema:"description=The final URL after redirects"`
	Markdown string `json:"markdown" jsonschema:"description=The page content converted to Markdown"`
}
