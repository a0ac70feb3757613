// Package results turns a classifier response into the ranked view shown to
// the user.
package results

import (
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/chromatone/internal/predict"
)

// MaxEntries is the number of ranked entries kept in a View.
const MaxEntries = 6

// Entry is one ranked label with its score scaled to a percentage.
type Entry struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// Format renders the percentage to one decimal place, e.g. "81.0%".
func (e Entry) Format() string {
	return fmt.Sprintf("%.1f%%", e.Percent)
}

// View is the display model derived from a prediction.
type View struct {
	TopLabel             string  `json:"topLabel,omitempty"`
	TopConfidencePercent int     `json:"topConfidencePercent"`
	Entries              []Entry `json:"rankedEntries"`
}

// HasTop reports whether a top label is available.
func (v View) HasTop() bool {
	return v.TopLabel != ""
}

// Derive builds the ranked view for r. A nil result yields an empty view.
//
// Scores are sorted by descending value with a stable sort, so equal scores
// keep their response order. Only the top confidence is rounded; entry
// percentages keep full precision.
func Derive(r *predict.Result) View {
	view := View{Entries: []Entry{}}
	if r == nil {
		return view
	}
	view.TopLabel = r.Tone

	scores := make([]predict.Score, len(r.Probabilities))
	copy(scores, r.Probabilities)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})

	if len(scores) == 0 {
		return view
	}

	top := scores[0]
	if view.TopLabel == "" {
		view.TopLabel = top.Label
	}
	view.TopConfidencePercent = roundPercent(top.Value)

	if len(scores) > MaxEntries {
		scores = scores[:MaxEntries]
	}
	view.Entries = make([]Entry, len(scores))
	for i, s := range scores {
		view.Entries[i] = Entry{Label: s.Label, Percent: s.Value * 100}
	}
	return view
}

// roundPercent rounds half away from zero and clamps to [0,100].
func roundPercent(v float64) int {
	p := math.Round(v * 100)
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return int(p)
}
