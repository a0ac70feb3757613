// Package session carries the last prediction between commands. It stands in
// for the per-tab store of a browser client: one hand-off per session
// directory, last writer wins.
package session

import (
	"time"

	"github.com/jmylchreest/chromatone/internal/predict"
)

// Handoff is the state passed from predict to results to palette.
type Handoff struct {
	Result        *predict.Result `json:"skinToneResult,omitempty"`
	ImagePreview  string          `json:"uploadedImagePreview,omitempty"`
	ImageName     string          `json:"uploadedImageName,omitempty"`
	PredictedTone string          `json:"predictedTone,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt,omitzero"`
}

// RecordPrediction stores a new result. The tone chosen on the results
// screen belongs to the previous prediction, so it is cleared.
func (h *Handoff) RecordPrediction(result *predict.Result, imageName, preview string) {
	h.Result = result
	h.ImageName = imageName
	h.ImagePreview = preview
	h.PredictedTone = ""
}

// RequireResult returns the stored result or ErrMissingResult.
func (h *Handoff) RequireResult() (*predict.Result, error) {
	if h == nil || h.Result == nil {
		return nil, ErrMissingResult
	}
	return h.Result, nil
}

// Empty reports whether nothing has been stored.
func (h *Handoff) Empty() bool {
	return h == nil || (h.Result == nil && h.ImagePreview == "" && h.ImageName == "" && h.PredictedTone == "")
}
