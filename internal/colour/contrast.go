package colour

var (
	// Black is the dark ink used on light swatches.
	Black = RGB{R: 0, G: 0, B: 0}

	// White is the light ink used on dark swatches.
	White = RGB{R: 255, G: 255, B: 255}
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r, g, b := rgb.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the WCAG 2.0 contrast ratio between two colours.
// Returns a value between 1 and 21.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// IsLight reports whether text on this colour should be dark.
func IsLight(rgb RGB) bool {
	return ContrastRatio(rgb, Black) >= ContrastRatio(rgb, White)
}

// InkFor returns black or white, whichever reads better on bg.
func InkFor(bg RGB) RGB {
	if IsLight(bg) {
		return Black
	}
	return White
}
