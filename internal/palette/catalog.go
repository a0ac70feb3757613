// Package palette resolves clothing colour palettes for a skin tone and
// undertone from the embedded catalog.
package palette

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/chromatone/internal/colour"
	"github.com/jmylchreest/chromatone/internal/tone"
)

//go:embed palettes.json
var catalogJSON []byte

// Color is a named swatch. Hex is kept as authored.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// RGB parses Hex. Catalog colours are validated at load time.
func (c Color) RGB() colour.RGB {
	return colour.MustParseHex(c.Hex)
}

// Palette holds the ordered upper and lower wear colours.
type Palette struct {
	Upper []Color `json:"upper"`
	Lower []Color `json:"lower"`
}

// Match tells whether a lookup hit the requested key or the default.
type Match int

const (
	// Found means the requested tone and undertone exist.
	Found Match = iota
	// Defaulted means the default pair was substituted.
	Defaulted
)

func (m Match) String() string {
	if m == Defaulted {
		return "defaulted"
	}
	return "found"
}

// Resolution is the result of Resolve. Tone and Undertone name the catalog
// entry that was actually used. Palette is shared and must not be modified.
type Resolution struct {
	Palette   *Palette
	Match     Match
	Tone      string
	Undertone string
}

// Catalog is a read-only two-level index: tone -> undertone -> palette.
type Catalog struct {
	defaultTone      string
	defaultUndertone string
	undertones       []string
	tones            map[string]map[string]*Palette
}

type catalogFile struct {
	Default struct {
		Tone      string `json:"tone"`
		Undertone string `json:"undertone"`
	} `json:"default"`
	Undertones []string                       `json:"undertones"`
	Tones      map[string]map[string]*Palette `json:"tones"`
}

// Load parses and validates catalog JSON. The default pair must be present
// and every colour must carry a valid 6-digit hex code.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse palette catalog: %w", err)
	}

	if f.Default.Tone == "" || f.Default.Undertone == "" {
		return nil, errors.New("palette catalog has no default tone/undertone")
	}
	if _, ok := f.Tones[f.Default.Tone][f.Default.Undertone]; !ok {
		return nil, fmt.Errorf("default palette %s/%s is missing from the catalog", f.Default.Tone, f.Default.Undertone)
	}

	for t, byUndertone := range f.Tones {
		for u, p := range byUndertone {
			if p == nil {
				return nil, fmt.Errorf("palette %s/%s is empty", t, u)
			}
			for _, c := range slices.Concat(p.Upper, p.Lower) {
				if _, err := colour.ParseHex(c.Hex); err != nil {
					return nil, fmt.Errorf("palette %s/%s colour %q: %w", t, u, c.Name, err)
				}
			}
		}
	}

	return &Catalog{
		defaultTone:      f.Default.Tone,
		defaultUndertone: f.Default.Undertone,
		undertones:       f.Undertones,
		tones:            f.Tones,
	}, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the fallback tone and undertone.
func (c *Catalog) Default() (toneName, undertone string) {
	return c.defaultTone, c.defaultUndertone
}

// Resolve looks up tone then undertone. A miss at either level falls back to
// the default pair, which Load guarantees exists.
func (c *Catalog) Resolve(toneName, undertone string) Resolution {
	if p, ok := c.tones[toneName][undertone]; ok {
		return Resolution{Palette: p, Match: Found, Tone: toneName, Undertone: undertone}
	}
	return Resolution{
		Palette:   c.tones[c.defaultTone][c.defaultUndertone],
		Match:     Defaulted,
		Tone:      c.defaultTone,
		Undertone: c.defaultUndertone,
	}
}

// Tones returns the catalog tone names in catalog label order, followed by
// any tones that have no label entry.
func (c *Catalog) Tones() []string {
	out := make([]string, 0, len(c.tones))
	seen := make(map[string]bool, len(c.tones))
	for _, l := range tone.All() {
		if _, ok := c.tones[l.Name]; ok {
			out = append(out, l.Name)
			seen[l.Name] = true
		}
	}
	var extra []string
	for name := range c.tones {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Undertones returns the undertones offered for selection.
func (c *Catalog) Undertones() []string {
	return slices.Clone(c.undertones)
}

// UndertonesFor returns the undertones that have a palette for toneName.
func (c *Catalog) UndertonesFor(toneName string) []string {
	var out []string
	for _, u := range c.undertones {
		if _, ok := c.tones[toneName][u]; ok {
			out = append(out, u)
		}
	}
	return out
}

// NormalizeTone maps an identifier ("honey_tan") or a display name in any
// case ("honey tan") to the catalog spelling. Unknown input is returned
// trimmed but otherwise unchanged so that Resolve reports a default.
func (c *Catalog) NormalizeTone(s string) string {
	s = strings.TrimSpace(s)
	name := tone.DisplayName(s)
	if _, ok := c.tones[name]; ok {
		return name
	}
	for t := range c.tones {
		if strings.EqualFold(t, s) {
			return t
		}
	}
	return s
}

// NormalizeUndertone title-cases s, so "warm" and "WARM" become "Warm".
func NormalizeUndertone(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

var std = MustLoad(catalogJSON)

// Standard returns the embedded catalog.
func Standard() *Catalog {
	return std
}

// Resolve looks up the embedded catalog.
func Resolve(toneName, undertone string) Resolution {
	return std.Resolve(toneName, undertone)
}
