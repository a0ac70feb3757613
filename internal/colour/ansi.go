package colour

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// DisableColourOutput forces plain output regardless of the terminal.
var DisableColourOutput = false

// SupportsANSI reports whether w is a terminal that should receive colour
// escape sequences. NO_COLOR disables colour as usual.
func SupportsANSI(w io.Writer) bool {
	if DisableColourOutput || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Preview returns an ANSI-coloured solid block for a colour.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewWithText returns a colour block with centred text in a contrasting ink.
func PreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	ink := InkFor(c)
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, ink.R, ink.G, ink.B, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bg + fg + display + ansiReset
}

// FormatSwatch formats a named colour as a single line, with a preview block
// when colour output is enabled.
func FormatSwatch(rgb RGB, name, hex string, withPreview bool) string {
	if withPreview {
		return fmt.Sprintf("%s  %-22s %s", Preview(rgb, defaultWidth), name, hex)
	}
	return fmt.Sprintf("%-22s %s", name, hex)
}
