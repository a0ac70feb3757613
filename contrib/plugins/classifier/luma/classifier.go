package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"

	"github.com/jmylchreest/chromatone/pkg/plugin"
)

// reference L* per tone identifier, lightest first.
var references = []struct {
	label     string
	lightness float64
}{
	{"porcelain", 86},
	{"ivory", 81},
	{"light_beige", 76},
	{"warm_beige", 71},
	{"golden_tan", 66},
	{"honey_tan", 61},
	{"caramel", 55},
	{"bronze_brown", 49},
	{"chestnut", 43},
	{"mocha_brown", 37},
	{"deep_cocoa", 30},
	{"ebony", 22},
}

// sigma is the spread of the Gaussian used to turn distances into scores.
const sigma = 5.0

// sampleStep limits how many pixels are visited on large photos.
const sampleStep = 4

// Classifier implements plugin.Classifier.
type Classifier struct{}

// Classify decodes the image and scores it against the reference lightness.
func (c *Classifier) Classify(ctx context.Context, req plugin.ClassifyRequest) (*plugin.ClassifyResponse, error) {
	img, _, err := image.Decode(bytes.NewReader(req.Image))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", req.Filename, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l, ok := centreLightness(img)
	if !ok {
		return nil, fmt.Errorf("image %s has no pixels", req.Filename)
	}
	return score(l), nil
}

// GetMetadata returns plugin metadata.
func (c *Classifier) GetMetadata() plugin.PluginInfo {
	labels := make([]string, len(references))
	for i, r := range references {
		labels[i] = r.label
	}
	return plugin.PluginInfo{
		Name:            "luma",
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Estimate skin tone from the mean CIE L* of the image centre",
		Labels:          labels,
	}
}

// centreLightness averages L* (0-100) over the middle half of img.
func centreLightness(img image.Image) (float64, bool) {
	b := img.Bounds()
	inner := image.Rect(
		b.Min.X+b.Dx()/4, b.Min.Y+b.Dy()/4,
		b.Max.X-b.Dx()/4, b.Max.Y-b.Dy()/4,
	)
	if inner.Empty() {
		inner = b
	}

	var sum float64
	var n int
	for y := inner.Min.Y; y < inner.Max.Y; y += sampleStep {
		for x := inner.Min.X; x < inner.Max.X; x += sampleStep {
			col, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := col.Lab()
			sum += l
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n) * 100, true
}

// score turns a lightness into a normalised distribution, most likely first.
func score(lightness float64) *plugin.ClassifyResponse {
	weights := make([]float64, len(references))
	var total float64
	for i, r := range references {
		d := lightness - r.lightness
		weights[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		total += weights[i]
	}

	resp := &plugin.ClassifyResponse{Probs: make([]plugin.LabelScore, len(references))}
	best := 0
	for i, r := range references {
		p := 0.0
		if total > 0 {
			p = weights[i] / total
		}
		resp.Probs[i] = plugin.LabelScore{Label: r.label, Probability: p}
		if weights[i] > weights[best] {
			best = i
		}
	}

	// Far outside the reference range every weight underflows to zero.
	if total == 0 {
		if lightness > references[0].lightness {
			best = 0
		} else {
			best = len(references) - 1
		}
		resp.Probs[best].Probability = 1
	}

	resp.Tone = references[best].label
	return resp
}
