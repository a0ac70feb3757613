package plugin

import "context"

// Classifier is the interface classifier plugins implement.
type Classifier interface {
	// Classify returns a tone identifier and an ordered probability list.
	Classify(ctx context.Context, req ClassifyRequest) (*ClassifyResponse, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}

// ClassifyRequest carries the uploaded image.
type ClassifyRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Image       []byte `json:"image"`
}

// LabelScore is one entry of the probability distribution. A slice is used
// rather than a map so the plugin's label order survives the RPC boundary.
type LabelScore struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// ClassifyResponse mirrors the prediction service response.
type ClassifyResponse struct {
	Tone  string       `json:"tone"`
	Probs []LabelScore `json:"probs"`
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	ProtocolVersion string   `json:"protocol_version"`
	Description     string   `json:"description"`
	Labels          []string `json:"labels,omitempty"`
}
