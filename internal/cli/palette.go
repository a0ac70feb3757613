package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/colour"
	"github.com/jmylchreest/chromatone/internal/export"
	"github.com/jmylchreest/chromatone/internal/palette"
)

type paletteOptions struct {
	tone      string
	undertone string
	format    string
	download  bool
	outputDir string
	preview   bool
}

func newPaletteCmd(a *app) *cobra.Command {
	opts := &paletteOptions{}
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show clothing colours for a tone and undertone",
		Long: `Show the upper and lower wear colours for a skin tone and undertone.

The tone defaults to the one detected by the last prediction. Unknown
tone/undertone pairs fall back to the default palette (Caramel, Warm).

Examples:
  # Palette for the last prediction, warm undertone
  chromatone palette

  # Cool undertone with terminal colour previews
  chromatone palette --undertone cool --preview

  # Save the palette as ChromaTone-<tone>-<undertone>.png
  chromatone palette --tone "Honey Tan" --download --output ~/Pictures

  # Export as CSV
  chromatone palette --format csv > palette.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPalette(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tone, "tone", "t", "", "tone name or identifier (default: last prediction)")
	cmd.Flags().StringVarP(&opts.undertone, "undertone", "u", "Warm", "undertone (warm, cool, neutral)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", palette.FormatText, "output format (text, json, csv)")
	cmd.Flags().BoolVarP(&opts.download, "download", "d", false, "render the palette to a PNG file")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", ".", "directory for the downloaded PNG")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews in terminal")
	return cmd
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, a *app, opts *paletteOptions) error {
	catalog := palette.Standard()

	toneName := opts.tone
	if toneName == "" {
		var err error
		if toneName, err = a.sessionTone(); err != nil {
			return err
		}
	}
	if toneName == "" {
		toneName, _ = catalog.Default()
		a.logger.Debug("no prediction stored, using default tone", "tone", toneName)
	}

	toneName = catalog.NormalizeTone(toneName)
	undertone := palette.NormalizeUndertone(opts.undertone)

	res := catalog.Resolve(toneName, undertone)
	if res.Match == palette.Defaulted {
		a.say(cmd.ErrOrStderr(), "No palette for %s / %s, showing %s / %s\n", toneName, undertone, res.Tone, res.Undertone)
	}

	out := cmd.OutOrStdout()
	textOpts := palette.TextOptions{Preview: opts.preview && colour.SupportsANSI(out)}
	if err := palette.Write(out, opts.format, res, textOpts); err != nil {
		return err
	}

	if !opts.download {
		return nil
	}

	data, err := export.Render(res.Palette, palette.Title(res.Tone, res.Undertone))
	if err != nil {
		return err
	}
	path, err := export.Save(opts.outputDir, res.Tone, res.Undertone, data)
	if err != nil {
		return err
	}
	a.logger.Debug("palette image written", "path", path, "bytes", len(data))
	a.say(cmd.ErrOrStderr(), "Saved %s\n", path)
	return nil
}

// sessionTone returns the tone chosen on the results screen, falling back to
// the stored prediction. Both may be empty.
func (a *app) sessionTone() (string, error) {
	store, err := a.store()
	if err != nil {
		return "", err
	}
	h, err := store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if h.PredictedTone != "" {
		return h.PredictedTone, nil
	}
	if h.Result != nil {
		return h.Result.Tone, nil
	}
	return "", nil
}
