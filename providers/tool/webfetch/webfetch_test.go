package webfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch_ConvertsHTMLToMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("unexpected user agent: %q", got)
		}
		w.Write([]byte(`<html><body><h1>Weather</h1><p>It is <strong>sunny</strong> today.</p></body></html>`))
	}))
	defer server.Close()

	output, err := Fetch(context.Background(), Input{URL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output.Markdown, "# Weather") {
		t.Errorf("heading not converted: %q", output.Markdown)
	}
	if !strings.Contains(output.Markdown, "**sunny**") {
		t.Errorf("bold text not converted: %q", output.Markdown)
	}
	if output.URL != server.URL {
		t.Errorf("unexpected final URL: %q", output.URL)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
		w.Write([]byte(`<p>landed</p>`))
	}))
	defer target.Close()

	output, err := Fetch(context.Background(), Input{URL: target.URL + "/old"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(output.URL, "/new") {
		t.Errorf("final URL should reflect redirect: %q", output.URL)
	}
}

func TestFetch_ErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := Fetch(context.Background(), Input{URL: server.URL}); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetch_EmptyURL(t *testing.T) {
	if _, err := Fetch(context.Background(), Input{URL: "  "}); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestNew_SchemaRequiresURL(t *testing.T) {
	info := New().ToolInfo()
	if info.Parameters == nil {
		t.Fatal("parameter schema missing")
	}
	found := false
	for _, name := range info.Parameters.Required {
		if name == "url" {
			found = true
		}
	}
	if !found {
		t.Errorf("url must be required: %+v", info.Parameters.Required)
	}
	if _, ok := info.Parameters.Properties["timeout_seconds"]; !ok {
		t.Error("timeout_seconds property missing")
	}
}
