// Package image validates uploaded photos and builds preview thumbnails.
package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/chromatone/internal/predict"
)

// ErrInvalidInput is returned when the selected file is not a supported image.
var ErrInvalidInput = errors.New("selected file is not an image")

// MaxUploadSize bounds the file read into memory for upload.
const MaxUploadSize = 32 << 20

// DefaultPreviewSize is the longest side of the preview thumbnail.
const DefaultPreviewSize = 256

// Upload is a validated image ready to send to a classifier.
type Upload struct {
	Name        string
	ContentType string
	Format      string
	Width       int
	Height      int
	Data        []byte
}

// Payload returns the classifier request body.
func (u *Upload) Payload() predict.Image {
	return predict.Image{Name: u.Name, ContentType: u.ContentType, Data: u.Data}
}

// Decode decodes the full image.
func (u *Upload) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(u.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// Load reads path and checks that its content decodes as a supported image.
// The extension is not trusted; content sniffing decides.
func Load(path string) (*Upload, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, path)
	}
	if info.Size() > MaxUploadSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MiB", ErrInvalidInput, path, MaxUploadSize>>20)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return FromBytes(filepath.Base(path), data)
}

// FromBytes validates data as an image named name.
func FromBytes(name string, data []byte) (*Upload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidInput, name)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, name, err)
	}

	return &Upload{
		Name:        name,
		ContentType: contentType(format, data),
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Data:        data,
	}, nil
}

func contentType(format string, data []byte) string {
	ct := http.DetectContentType(data)
	if strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/" + format
}

// Thumbnail scales img so that its longest side is at most maxSide,
// preserving aspect ratio. Smaller images are returned unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		maxSide = DefaultPreviewSize
	}
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}
	return resize.Thumbnail(uint(maxSide), uint(maxSide), img, resize.Lanczos3)
}

// PreviewDataURL renders a PNG thumbnail of u as a data URL.
func PreviewDataURL(u *Upload, maxSide int) (string, error) {
	img, err := u.Decode()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, Thumbnail(img, maxSide)); err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL returns the image encoded in a data URL produced by
// PreviewDataURL.
func DecodeDataURL(dataURL string) (image.Image, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: not an image data URL", ErrInvalidInput)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return img, nil
}

// HasImageExtension reports whether path has a conventional image extension.
// Load does not require one; the CLI uses it only to warn.
func HasImageExtension(path string) bool {
	return isImageFile(path)
}
