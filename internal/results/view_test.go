package results

import (
	"fmt"
	"testing"

	"github.com/jmylchreest/chromatone/internal/predict"
)

func TestDeriveScenario(t *testing.T) {
	r := &predict.Result{
		Tone: "Caramel",
		Probabilities: predict.Probabilities{
			{Label: "caramel", Value: 0.81},
			{Label: "honey_tan", Value: 0.12},
			{Label: "ivory", Value: 0.07},
		},
	}

	v := Derive(r)
	if v.TopLabel != "Caramel" {
		t.Errorf("Expected top label 'Caramel', got %q", v.TopLabel)
	}
	if v.TopConfidencePercent != 81 {
		t.Errorf("Expected 81%%, got %d", v.TopConfidencePercent)
	}

	want := []struct {
		label string
		text  string
	}{
		{"caramel", "81.0%"},
		{"honey_tan", "12.0%"},
		{"ivory", "7.0%"},
	}
	if len(v.Entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(v.Entries))
	}
	for i, w := range want {
		if v.Entries[i].Label != w.label || v.Entries[i].Format() != w.text {
			t.Errorf("Entry %d = %s %s, want %s %s", i, v.Entries[i].Label, v.Entries[i].Format(), w.label, w.text)
		}
	}
}

func TestDeriveTiesKeepOrder(t *testing.T) {
	tests := []struct {
		name  string
		probs predict.Probabilities
		want  []string
	}{
		{
			name:  "a first",
			probs: predict.Probabilities{{Label: "a", Value: 0.5}, {Label: "b", Value: 0.5}},
			want:  []string{"a", "b"},
		},
		{
			name:  "b first",
			probs: predict.Probabilities{{Label: "b", Value: 0.5}, {Label: "a", Value: 0.5}},
			want:  []string{"b", "a"},
		},
		{
			name: "tie behind leader",
			probs: predict.Probabilities{
				{Label: "x", Value: 0.2}, {Label: "lead", Value: 0.6}, {Label: "y", Value: 0.2},
			},
			want: []string{"lead", "x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Derive(&predict.Result{Probabilities: tt.probs})
			for i, label := range tt.want {
				if v.Entries[i].Label != label {
					t.Errorf("Position %d: expected %q, got %q", i, label, v.Entries[i].Label)
				}
			}
			if v.TopLabel != tt.want[0] {
				t.Errorf("Expected top label to fall back to %q, got %q", tt.want[0], v.TopLabel)
			}
		})
	}
}

func TestDeriveNil(t *testing.T) {
	v := Derive(nil)
	if v.HasTop() {
		t.Errorf("Expected no top label, got %q", v.TopLabel)
	}
	if v.TopConfidencePercent != 0 || len(v.Entries) != 0 {
		t.Errorf("Expected empty view, got %+v", v)
	}
}

func TestDeriveEmptyProbabilities(t *testing.T) {
	v := Derive(&predict.Result{Tone: "Ivory", Probabilities: predict.Probabilities{}})
	if v.TopLabel != "Ivory" {
		t.Errorf("Expected top label 'Ivory', got %q", v.TopLabel)
	}
	if v.TopConfidencePercent != 0 || len(v.Entries) != 0 {
		t.Errorf("Expected zero confidence and no entries, got %+v", v)
	}

	v = Derive(&predict.Result{})
	if v.HasTop() {
		t.Errorf("Expected absent top label, got %q", v.TopLabel)
	}
}

func TestDeriveTruncatesAndSorts(t *testing.T) {
	var probs predict.Probabilities
	for i := range 10 {
		probs.Set(fmt.Sprintf("label_%d", i), float64(i%4)/10)
	}

	v := Derive(&predict.Result{Tone: "x", Probabilities: probs})
	if len(v.Entries) != MaxEntries {
		t.Fatalf("Expected %d entries, got %d", MaxEntries, len(v.Entries))
	}
	for i := 1; i < len(v.Entries); i++ {
		if v.Entries[i].Percent > v.Entries[i-1].Percent {
			t.Errorf("Entries not non-increasing at %d: %v > %v", i, v.Entries[i].Percent, v.Entries[i-1].Percent)
		}
	}
	// label_3 and label_7 both score 0.3; response order decides.
	if v.Entries[0].Label != "label_3" || v.Entries[1].Label != "label_7" {
		t.Errorf("Unexpected leaders %q, %q", v.Entries[0].Label, v.Entries[1].Label)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	probs := predict.Probabilities{{Label: "low", Value: 0.1}, {Label: "high", Value: 0.9}}
	Derive(&predict.Result{Probabilities: probs})
	if probs[0].Label != "low" {
		t.Error("Derive reordered the caller's probabilities")
	}
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.125, 13},
		{0.375, 38},
		{0.81, 81},
		{0.004, 0},
		{0.995, 100},
		{1.2, 100},
		{-0.1, 0},
	}
	for _, tt := range tests {
		if got := roundPercent(tt.in); got != tt.want {
			t.Errorf("roundPercent(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
