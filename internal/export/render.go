// Package export rasterises a palette into a downloadable PNG.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/chromatone/internal/colour"
	"github.com/jmylchreest/chromatone/internal/palette"
	"github.com/jmylchreest/chromatone/internal/security"
)

// Canvas and grid geometry in pixels. Section offsets are fixed; they do not
// depend on how many rows the upper section uses.
const (
	CanvasWidth  = 1200
	CanvasHeight = 800

	Margin        = 40
	TitleBaseline = 60

	UpperSectionY = 100
	LowerSectionY = 380

	Columns       = 6
	MaxPerSection = 2 * Columns

	CellWidth    = 160
	CellHeight   = 60
	ColumnStride = 190
	RowStride    = 100

	gridOffset = 30
	nameOffset = 80
	hexOffset  = 95
)

// Font sizes in points at 72 DPI, so one point is one pixel.
const (
	titleSize   = 32
	sectionSize = 20
	labelSize   = 12
)

var (
	// Background fills the canvas.
	Background = colour.MustParseHex("#F5F1E8")
	// Ink is used for all text.
	Ink = colour.MustParseHex("#2D2D2D")
)

// CellRect returns the swatch rectangle for the index-th colour of the
// section whose label baseline is at sectionY.
func CellRect(sectionY, index int) image.Rectangle {
	x := Margin + (index%Columns)*ColumnStride
	y := sectionY + gridOffset + (index/Columns)*RowStride
	return image.Rect(x, y, x+CellWidth, y+CellHeight)
}

// Renderer draws palettes with preloaded font faces. It is not safe for
// concurrent use.
type Renderer struct {
	titleFace   font.Face
	sectionFace font.Face
	labelFace   font.Face
	logger      hclog.Logger
}

// NewRenderer parses the embedded Go fonts.
func NewRenderer(logger hclog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, &RenderError{Stage: "font", Err: err}
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, &RenderError{Stage: "font", Err: err}
	}

	r := &Renderer{logger: logger}
	faces := []struct {
		dst  *font.Face
		font *opentype.Font
		size float64
	}{
		{&r.titleFace, bold, titleSize},
		{&r.sectionFace, bold, sectionSize},
		{&r.labelFace, regular, labelSize},
	}
	for _, f := range faces {
		face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, &RenderError{Stage: "font", Err: err}
		}
		*f.dst = face
	}
	return r, nil
}

// Draw renders p onto a new canvas.
func (r *Renderer) Draw(p *palette.Palette, title string) (*image.RGBA, error) {
	if r == nil || r.titleFace == nil || r.sectionFace == nil || r.labelFace == nil {
		return nil, &RenderError{Stage: "surface", Err: ErrNoSurface}
	}
	if p == nil {
		return nil, &RenderError{Stage: "layout", Err: fmt.Errorf("nil palette")}
	}
	sections := []struct {
		label  string
		colors []palette.Color
	}{
		{palette.UpperLabel, p.Upper},
		{palette.LowerLabel, p.Lower},
	}
	for _, s := range sections {
		if len(s.colors) > MaxPerSection {
			return nil, &RenderError{
				Stage: "layout",
				Err:   fmt.Errorf("%w: %s has %d, max %d", ErrTooManyColours, s.label, len(s.colors), MaxPerSection),
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background.RGBA()), image.Point{}, draw.Src)

	r.text(img, r.titleFace, title, Margin, TitleBaseline)
	if err := r.section(img, palette.UpperLabel, p.Upper, UpperSectionY); err != nil {
		return nil, err
	}
	if err := r.section(img, palette.LowerLabel, p.Lower, LowerSectionY); err != nil {
		return nil, err
	}
	return img, nil
}

func (r *Renderer) section(img *image.RGBA, label string, colors []palette.Color, y int) error {
	r.text(img, r.sectionFace, label, Margin, y)

	for i, c := range colors {
		rgb, err := colour.ParseHex(c.Hex)
		if err != nil {
			return &RenderError{Stage: "layout", Err: fmt.Errorf("%s colour %q: %w", label, c.Name, err)}
		}
		cell := CellRect(y, i)
		draw.Draw(img, cell, image.NewUniform(rgb.RGBA()), image.Point{}, draw.Src)
		r.text(img, r.labelFace, c.Name, cell.Min.X, cell.Min.Y+nameOffset)
		r.text(img, r.labelFace, c.Hex, cell.Min.X, cell.Min.Y+hexOffset)
	}
	return nil
}

// text draws s with its baseline starting at (x, y).
func (r *Renderer) text(img *image.RGBA, face font.Face, s string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Ink.RGBA()),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// Render draws p and encodes it as PNG.
func (r *Renderer) Render(p *palette.Palette, title string) ([]byte, error) {
	img, err := r.Draw(p, title)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &RenderError{Stage: "encode", Err: err}
	}
	r.logger.Debug("rendered palette image", "title", title, "bytes", buf.Len())
	return buf.Bytes(), nil
}

var (
	defaultMu       sync.Mutex
	defaultRenderer = sync.OnceValues(func() (*Renderer, error) {
		return NewRenderer(nil)
	})
)

// Render uses a shared renderer.
func Render(p *palette.Palette, title string) ([]byte, error) {
	r, err := defaultRenderer()
	if err != nil {
		return nil, err
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return r.Render(p, title)
}

// Filename returns "ChromaTone-<tone>-<undertone>.png" with each part
// sanitised for use as a path component.
func Filename(toneName, undertone string) string {
	return fmt.Sprintf("ChromaTone-%s-%s.png",
		security.SanitizeFilenamePart(toneName),
		security.SanitizeFilenamePart(undertone))
}

// Save writes data to dir under Filename and returns the path written.
func Save(dir, toneName, undertone string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, Filename(toneName, undertone))
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - exported image is meant to be shared
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
