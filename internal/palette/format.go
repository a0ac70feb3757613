package palette

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/jmylchreest/chromatone/internal/colour"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Section labels, shared with the image exporter.
const (
	UpperLabel = "Upper Wear"
	LowerLabel = "Lower Wear"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatCSV}
}

// Title returns the heading used for a tone/undertone pair.
func Title(toneName, undertone string) string {
	return fmt.Sprintf("%s - %s Undertone", toneName, undertone)
}

// TextOptions controls text output.
type TextOptions struct {
	// Preview prints an ANSI colour block before each swatch.
	Preview bool
}

// Write renders r in the named format.
func Write(w io.Writer, format string, r Resolution, opts TextOptions) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return fmt.Errorf("unsupported format %q (valid: %s)", format, strings.Join(Formats(), ", "))
	}
}

// WriteText prints the title and both sections as aligned swatch lists.
func WriteText(w io.Writer, r Resolution, opts TextOptions) error {
	var b strings.Builder
	fmt.Fprintln(&b, Title(r.Tone, r.Undertone))

	section := func(label string, colors []Color) {
		fmt.Fprintf(&b, "\n%s\n", label)
		for _, c := range colors {
			fmt.Fprintf(&b, "  %s\n", colour.FormatSwatch(c.RGB(), c.Name, c.Hex, opts.Preview))
		}
	}
	section(UpperLabel, r.Palette.Upper)
	section(LowerLabel, r.Palette.Lower)

	_, err := io.WriteString(w, b.String())
	return err
}

type jsonOutput struct {
	Tone      string  `json:"tone"`
	Undertone string  `json:"undertone"`
	Match     string  `json:"match"`
	Upper     []Color `json:"upper"`
	Lower     []Color `json:"lower"`
}

// WriteJSON prints r as an indented JSON document.
func WriteJSON(w io.Writer, r Resolution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonOutput{
		Tone:      r.Tone,
		Undertone: r.Undertone,
		Match:     r.Match.String(),
		Upper:     r.Palette.Upper,
		Lower:     r.Palette.Lower,
	})
}

type csvRow struct {
	Tone      string `csv:"tone"`
	Undertone string `csv:"undertone"`
	Section   string `csv:"section"`
	Position  int    `csv:"position"`
	Name      string `csv:"name"`
	Hex       string `csv:"hex"`
}

// WriteCSV prints one row per colour with a header line.
func WriteCSV(w io.Writer, r Resolution) error {
	rows := make([]csvRow, 0, len(r.Palette.Upper)+len(r.Palette.Lower))
	add := func(section string, colors []Color) {
		for i, c := range colors {
			rows = append(rows, csvRow{
				Tone:      r.Tone,
				Undertone: r.Undertone,
				Section:   section,
				Position:  i + 1,
				Name:      c.Name,
				Hex:       c.Hex,
			})
		}
	}
	add("upper", r.Palette.Upper)
	add("lower", r.Palette.Lower)

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}
	_, err = w.Write(data)
	return err
}
