package predict

import (
	"context"
	"fmt"
	"strings"
)

// FormField is the multipart field that carries the image.
const FormField = "file"

// Image is the binary payload sent for classification.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Predictor classifies a single image.
type Predictor interface {
	Predict(ctx context.Context, img Image) (*Result, error)
}

// Backend names accepted by the configuration.
const (
	BackendHTTP   = "http"
	BackendGemini = "gemini"
	BackendPlugin = "plugin"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendHTTP, BackendGemini, BackendPlugin}
}

// ParseBackend validates a backend name.
func ParseBackend(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return BackendHTTP, nil
	}
	for _, b := range Backends() {
		if n == b {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (valid: %s)", name, strings.Join(Backends(), ", "))
}
