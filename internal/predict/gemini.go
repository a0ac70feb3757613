package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/chromatone/internal/tone"
)

const (
	// DefaultGeminiModel is used when no model is configured.
	DefaultGeminiModel = "gemini-2.5-flash"

	geminiPrompt = "Classify the visible skin tone of the person in this photo. " +
		"Answer with the single best tone identifier and a probability for every identifier in the list, " +
		"probabilities between 0 and 1. Identifiers: %s."
)

// generateFunc matches genai Models.GenerateContent.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiClassifier asks a Gemini model to classify the image into the tone
// catalog identifiers.
type GeminiClassifier struct {
	model    string
	logger   hclog.Logger
	generate generateFunc
}

// NewGeminiClassifier creates a Gemini API client using GOOGLE_API_KEY.
func NewGeminiClassifier(ctx context.Context, model string, logger hclog.Logger) (*GeminiClassifier, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required for the %s backend", BackendGemini)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	return newGeminiClassifier(model, logger, client.Models.GenerateContent), nil
}

func newGeminiClassifier(model string, logger hclog.Logger, generate generateFunc) *GeminiClassifier {
	if model == "" {
		model = DefaultGeminiModel
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GeminiClassifier{model: model, logger: logger, generate: generate}
}

// Predict sends the image inline with a JSON response schema.
func (g *GeminiClassifier) Predict(ctx context.Context, img Image) (*Result, error) {
	mimeType := img.ContentType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	ids := tone.Identifiers()
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, mimeType),
			genai.NewPartFromText(fmt.Sprintf(geminiPrompt, strings.Join(ids, ", "))),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiSchema(ids),
	}

	g.logger.Debug("calling GenerateContent", "model", g.model, "bytes", len(img.Data))

	resp, err := g.generate(ctx, g.model, contents, config)
	if err != nil {
		return nil, &BackendError{Message: fmt.Sprintf("Gemini request failed: %v", err), Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &BackendError{Message: "Gemini returned no candidates"}
	}

	result, err := parseGeminiJSON(resp.Text())
	if err != nil {
		return nil, &BackendError{Message: fmt.Sprintf("invalid response from Gemini: %v", err), Err: err}
	}
	return Normalize(result), nil
}

func geminiSchema(ids []string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tone": {Type: genai.TypeString, Enum: ids},
			"probs": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label":       {Type: genai.TypeString, Enum: ids},
						"probability": {Type: genai.TypeNumber},
					},
					Required: []string{"label", "probability"},
				},
			},
		},
		Required:         []string{"tone", "probs"},
		PropertyOrdering: []string{"tone", "probs"},
	}
}

type geminiResponse struct {
	Tone  string `json:"tone"`
	Probs []struct {
		Label       string  `json:"label"`
		Probability float64 `json:"probability"`
	} `json:"probs"`
}

func parseGeminiJSON(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw geminiResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, err
	}

	probs := make(Probabilities, 0, len(raw.Probs))
	for _, p := range raw.Probs {
		if p.Probability < 0 || p.Probability > 1 {
			return nil, fmt.Errorf("probability for %q out of range: %v", p.Label, p.Probability)
		}
		probs.Set(p.Label, p.Probability)
	}
	return &Result{Tone: raw.Tone, Probabilities: probs}, nil
}
