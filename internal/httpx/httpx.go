package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leofalp/react-agent/providers/observability"
)

// DefaultPreviewLength caps how much of a response body is echoed in errors.
const DefaultPreviewLength = 500

// Header is a single HTTP header to set on an outbound request.
type Header struct {
	Key   string
	Value string
}

// BearerAuth builds an Authorization header carrying a Bearer token.
func BearerAuth(token string) Header {
	return Header{Key: "Authorization", Value: "Bearer " + token}
}

// PostJSON performs a synchronous HTTP POST with a JSON body and decodes the
// JSON response into Output.
//
// Error handling strategy:
//   - context errors (timeout, cancellation) propagate through client.Do
//   - non-2xx statuses return an error containing the full response body
//   - decode errors include a truncated response preview for debugging
//
// The response body is always closed. When an observer is present in ctx, the
// request and response are logged at trace level.
func PostJSON[Output any](ctx context.Context, client *http.Client, url string, headers []Header, body any) (*Output, error) {
	observer := observability.ObserverFromContext(ctx)

	if client == nil {
		client = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	if observer != nil {
		observer.Trace("http request",
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPBodySize, len(jsonBody)),
		)
	}

	requestStart := time.Now()
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil && observer != nil {
			observer.Warn("failed to close response body",
				observability.Error(closeErr),
				observability.String(observability.AttrHTTPURL, url),
			)
		}
	}()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if observer != nil {
		observer.Trace("http response",
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, time.Since(requestStart)),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, string(respBody))
	}

	var output Output
	if err := json.Unmarshal(respBody, &output); err != nil {
		return nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nresponse preview: %s",
			res.StatusCode, err, Truncate(string(respBody), DefaultPreviewLength))
	}

	return &output, nil
}

// Truncate shortens s to at most maxLen characters, appending a suffix that
// records the original total length so callers know data was omitted.
// A zero or negative maxLen falls back to [DefaultPreviewLength].
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultPreviewLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
