package predict

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewHTTPClientDefaults(t *testing.T) {
	c := NewHTTPClient("")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("Expected default base URL %q, got %q", DefaultBaseURL, c.BaseURL())
	}

	c = NewHTTPClient("http://example.com:9000/")
	if c.BaseURL() != "http://example.com:9000" {
		t.Errorf("Expected trailing slash trimmed, got %q", c.BaseURL())
	}
}

func TestPredictSendsMultipartAndNormalises(t *testing.T) {
	var gotPath, gotMethod, gotField, gotFilename, gotContentType string
	var gotData []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm error = %v", err)
			return
		}
		for field := range r.MultipartForm.File {
			gotField = field
		}
		file, header, err := r.FormFile(FormField)
		if err != nil {
			t.Errorf("FormFile error = %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tone": "caramel", "probs": {"caramel": 0.81, "honey_tan": 0.12, "ivory": 0.07}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL)
	result, err := client.Predict(context.Background(), Image{
		Name:        "selfie.png",
		ContentType: "image/png",
		Data:        []byte("fake-png"),
	})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/predict" {
		t.Errorf("Expected POST /predict, got %s %s", gotMethod, gotPath)
	}
	if gotField != "file" {
		t.Errorf("Expected form field 'file', got %q", gotField)
	}
	if gotFilename != "selfie.png" || gotContentType != "image/png" {
		t.Errorf("Unexpected part header: filename=%q content-type=%q", gotFilename, gotContentType)
	}
	if string(gotData) != "fake-png" {
		t.Errorf("Unexpected payload %q", gotData)
	}

	if result.Tone != "Caramel" {
		t.Errorf("Expected tone normalised to 'Caramel', got %q", result.Tone)
	}
	if len(result.Probabilities) != 3 || result.Probabilities[0].Label != "caramel" {
		t.Errorf("Unexpected probabilities %+v", result.Probabilities)
	}
}

func TestPredictUnknownToneKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"tone": "olive", "probs": {}}`))
	}))
	defer server.Close()

	result, err := NewHTTPClient(server.URL).Predict(context.Background(), Image{Data: []byte{1}})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if result.Tone != "olive" {
		t.Errorf("Expected unknown tone to pass through, got %q", result.Tone)
	}
}

func TestPredictBackendErrorWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "file field missing"}`))
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL).Predict(context.Background(), Image{Data: []byte{1}})
	if err == nil {
		t.Fatal("Expected error for 400 response")
	}

	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("Expected *BackendError, got %T", err)
	}
	if be.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", be.StatusCode)
	}
	if be.Error() != `{"error": "file field missing"}` {
		t.Errorf("Expected body text as message, got %q", be.Error())
	}
	if !errors.Is(err, ErrBackend) {
		t.Error("Expected errors.Is(err, ErrBackend)")
	}
}

func TestPredictBackendErrorGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL).Predict(context.Background(), Image{Data: []byte{1}})
	if err == nil {
		t.Fatal("Expected error for 503 response")
	}
	want := "Backend error: 503 Service Unavailable"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestPredictInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewHTTPClient(server.URL).Predict(context.Background(), Image{Data: []byte{1}})
	if !errors.Is(err, ErrBackend) {
		t.Errorf("Expected backend error for invalid JSON, got %v", err)
	}
}

func TestPredictConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPClient(url).Predict(context.Background(), Image{Data: []byte{1}})
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("Expected backend error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Could not connect") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestPredictCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient(server.URL).Predict(ctx, Image{Data: []byte{1}})
	if err == nil {
		t.Fatal("Expected error when context is cancelled")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected wrapped deadline error, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	if err := NewHTTPClient(server.URL).Health(context.Background()); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}
