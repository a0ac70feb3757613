// Package predict sends photos to a skin tone classifier and normalises the
// response into a Result.
package predict

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/chromatone/internal/tone"
)

// Score is a single label probability.
type Score struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Probabilities is a label to probability mapping that remembers the order
// in which labels appeared in the classifier response. It is encoded as a
// JSON object.
type Probabilities []Score

// Get returns the probability for label.
func (p Probabilities) Get(label string) (float64, bool) {
	for _, s := range p {
		if s.Label == label {
			return s.Value, true
		}
	}
	return 0, false
}

// Set updates label in place, or appends it when absent.
func (p *Probabilities) Set(label string, value float64) {
	for i := range *p {
		if (*p)[i].Label == label {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Score{Label: label, Value: value})
}

// MarshalJSON encodes the scores as a JSON object in their stored order.
func (p Probabilities) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Value)
		if err != nil {
			return nil, fmt.Errorf("probability for %q: %w", s.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping document order. A repeated key
// keeps its first position and its last value.
func (p *Probabilities) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("probabilities: expected object, got %v", tok)
	}

	out := Probabilities{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("probabilities: expected string key, got %v", keyTok)
		}
		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("probabilities: value for %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

// Result is a classifier response. After normalisation Tone holds a display
// label, not a catalog identifier.
type Result struct {
	Tone          string        `json:"tone"`
	Probabilities Probabilities `json:"probs"`
}

// Normalize replaces a known tone identifier with its display name. It must
// only be applied once per response.
func Normalize(r *Result) *Result {
	if r == nil || r.Tone == "" {
		return r
	}
	if name, ok := tone.Lookup(r.Tone); ok {
		r.Tone = name
	}
	return r
}
