package predict

import (
	"testing"

	"github.com/jmylchreest/chromatone/pkg/plugin"
)

func TestNewPluginClassifierRequiresPath(t *testing.T) {
	if _, err := NewPluginClassifier("", nil); err == nil {
		t.Error("Expected error for empty plugin path")
	}
	if _, err := NewPluginClassifier("/usr/local/bin/classifier", nil); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFromPluginResponse(t *testing.T) {
	resp := &plugin.ClassifyResponse{
		Tone: "chestnut",
		Probs: []plugin.LabelScore{
			{Label: "chestnut", Probability: 0.5},
			{Label: "mocha_brown", Probability: 0.3},
			{Label: "chestnut", Probability: 0.55},
		},
	}

	got := FromPluginResponse(resp)
	if got.Tone != "chestnut" {
		t.Errorf("Expected raw tone 'chestnut', got %q", got.Tone)
	}
	if len(got.Probabilities) != 2 {
		t.Fatalf("Expected 2 probabilities, got %d", len(got.Probabilities))
	}
	if got.Probabilities[0].Label != "chestnut" || got.Probabilities[0].Value != 0.55 {
		t.Errorf("Expected chestnut=0.55 first, got %+v", got.Probabilities[0])
	}

	if Normalize(got).Tone != "Chestnut" {
		t.Errorf("Expected normalised tone 'Chestnut', got %q", got.Tone)
	}

	empty := FromPluginResponse(nil)
	if empty == nil || empty.Probabilities == nil || len(empty.Probabilities) != 0 {
		t.Errorf("Expected empty result for nil response, got %+v", empty)
	}
}
