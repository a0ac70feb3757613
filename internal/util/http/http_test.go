package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmylchreest/chromatone/internal/version"
)

func TestFetch(t *testing.T) {
	var gotUA, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("X-Test")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	data, err := Fetch(context.Background(), server.URL, FetchOptions{Headers: map[string]string{"X-Test": "yes"}})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("Expected body 'ok', got %q", data)
	}
	if gotUA != version.UserAgent() {
		t.Errorf("Expected User-Agent %q, got %q", version.UserAgent(), gotUA)
	}
	if gotHeader != "yes" {
		t.Errorf("Expected custom header, got %q", gotHeader)
	}
}

func TestFetchNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := Fetch(context.Background(), server.URL, FetchOptions{}); err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("Expected HTTP 503 error, got %v", err)
	}
}

func TestReadErrorBody(t *testing.T) {
	long := strings.Repeat("x", MaxErrorBody+100)
	if got := ReadErrorBody(strings.NewReader(long)); len(got) != MaxErrorBody {
		t.Errorf("Expected body capped at %d, got %d", MaxErrorBody, len(got))
	}
}

func TestNewClient(t *testing.T) {
	if c := NewClient(0); c.Timeout != 0 {
		t.Errorf("Expected no timeout, got %s", c.Timeout)
	}
}
