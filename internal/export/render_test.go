package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/chromatone/internal/colour"
	"github.com/jmylchreest/chromatone/internal/palette"
)

func swatches(prefix string, n int, hex string) []palette.Color {
	out := make([]palette.Color, n)
	for i := range out {
		out[i] = palette.Color{Name: prefix, Hex: hex}
	}
	return out
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

func centre(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func TestCellRect(t *testing.T) {
	tests := []struct {
		sectionY int
		index    int
		want     image.Rectangle
	}{
		{UpperSectionY, 0, image.Rect(40, 130, 200, 190)},
		{UpperSectionY, 5, image.Rect(990, 130, 1150, 190)},
		{UpperSectionY, 6, image.Rect(40, 230, 200, 290)},
		{LowerSectionY, 0, image.Rect(40, 410, 200, 470)},
		{LowerSectionY, 11, image.Rect(990, 510, 1150, 570)},
	}
	for _, tt := range tests {
		if got := CellRect(tt.sectionY, tt.index); got != tt.want {
			t.Errorf("CellRect(%d, %d) = %v, want %v", tt.sectionY, tt.index, got, tt.want)
		}
	}

	if last := CellRect(UpperSectionY, MaxPerSection-1); last.Max.Y >= LowerSectionY {
		t.Errorf("Upper section overlaps lower label: %v", last)
	}
}

func TestRenderSingleRowLayout(t *testing.T) {
	p := &palette.Palette{
		Upper: swatches("Red", 6, "#FF0000"),
		Lower: swatches("Blue", 2, "#0000FF"),
	}

	data, err := Render(p, palette.Title("Caramel", "Warm"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := decode(t, data)

	if b := img.Bounds(); b.Dx() != CanvasWidth || b.Dy() != CanvasHeight {
		t.Fatalf("Expected %dx%d canvas, got %v", CanvasWidth, CanvasHeight, b)
	}
	if got := colour.ToRGB(img.At(CanvasWidth-1, CanvasHeight-1)); got != Background {
		t.Errorf("Expected background %s, got %s", Background.Hex(), got.Hex())
	}

	red := colour.RGB{R: 255}
	for i := range 6 {
		pt := centre(CellRect(UpperSectionY, i))
		if got := colour.ToRGB(img.At(pt.X, pt.Y)); got != red {
			t.Errorf("Upper cell %d: expected red, got %s", i, got.Hex())
		}
	}

	// A second upper row would start here; it must be empty.
	pt := centre(CellRect(UpperSectionY, 6))
	if got := colour.ToRGB(img.At(pt.X, pt.Y)); got != Background {
		t.Errorf("Expected no second upper row, got %s", got.Hex())
	}

	// The lower section stays at its fixed offset.
	blue := colour.RGB{B: 255}
	pt = centre(CellRect(LowerSectionY, 0))
	if got := colour.ToRGB(img.At(pt.X, pt.Y)); got != blue {
		t.Errorf("Lower cell 0: expected blue at %v, got %s", pt, got.Hex())
	}
	pt = centre(CellRect(LowerSectionY, 2))
	if got := colour.ToRGB(img.At(pt.X, pt.Y)); got != Background {
		t.Errorf("Expected lower cell 2 empty, got %s", got.Hex())
	}
}

func TestRenderDrawsTitleText(t *testing.T) {
	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	blank, err := r.Draw(&palette.Palette{}, "")
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	titled, err := r.Draw(&palette.Palette{}, "Caramel - Warm Undertone")
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	inked := 0
	for y := TitleBaseline - titleSize; y < TitleBaseline+8; y++ {
		for x := Margin; x < Margin+400; x++ {
			if titled.RGBAAt(x, y) != blank.RGBAAt(x, y) {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("Expected title text to change pixels in the title area")
	}
}

func TestRenderStandardPalette(t *testing.T) {
	res := palette.Resolve("Ebony", "Cool")
	data, err := Render(res.Palette, palette.Title(res.Tone, res.Undertone))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := decode(t, data)

	pt := centre(CellRect(UpperSectionY, 0))
	if got := colour.ToRGB(img.At(pt.X, pt.Y)); got != res.Palette.Upper[0].RGB() {
		t.Errorf("Expected first upper swatch %s, got %s", res.Palette.Upper[0].Hex, got.Hex())
	}
}

func TestRenderErrors(t *testing.T) {
	var re *RenderError

	_, err := (&Renderer{}).Render(&palette.Palette{}, "x")
	if !errors.As(err, &re) || re.Stage != "surface" || !errors.Is(err, ErrNoSurface) {
		t.Errorf("Expected surface error, got %v", err)
	}

	r, err := NewRenderer(nil)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	if _, err := r.Render(nil, "x"); !errors.As(err, &re) || re.Stage != "layout" {
		t.Errorf("Expected layout error for nil palette, got %v", err)
	}

	tooMany := &palette.Palette{Upper: swatches("Red", MaxPerSection+1, "#FF0000")}
	if _, err := r.Render(tooMany, "x"); !errors.Is(err, ErrTooManyColours) {
		t.Errorf("Expected ErrTooManyColours, got %v", err)
	}

	// Both sections overflow: the upper section is always reported.
	bothOver := &palette.Palette{
		Upper: swatches("Red", MaxPerSection+1, "#FF0000"),
		Lower: swatches("Blue", MaxPerSection+2, "#0000FF"),
	}
	for range 20 {
		_, err := r.Render(bothOver, "x")
		if !errors.Is(err, ErrTooManyColours) || !strings.Contains(err.Error(), palette.UpperLabel) {
			t.Fatalf("Expected upper section overflow, got %v", err)
		}
	}

	badHex := &palette.Palette{Lower: []palette.Color{{Name: "Bad", Hex: "zzz"}}}
	if _, err := r.Render(badHex, "x"); !errors.As(err, &re) || re.Stage != "layout" {
		t.Errorf("Expected layout error for bad hex, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		tone, undertone string
		want            string
	}{
		{"Caramel", "Warm", "ChromaTone-Caramel-Warm.png"},
		{"Bronze Brown", "Cool", "ChromaTone-Bronze Brown-Cool.png"},
		{"../evil", "Warm", "ChromaTone-_evil-Warm.png"},
		{"", "", "ChromaTone-unknown-unknown.png"},
	}
	for _, tt := range tests {
		if got := Filename(tt.tone, tt.undertone); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.tone, tt.undertone, got, tt.want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := Save(dir, "Honey Tan", "Neutral", []byte("png"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != "ChromaTone-Honey Tan-Neutral.png" {
		t.Errorf("Unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png" {
		t.Errorf("Unexpected file content %q, %v", data, err)
	}
}
