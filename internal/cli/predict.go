package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/image"
	"github.com/jmylchreest/chromatone/internal/results"
	"github.com/jmylchreest/chromatone/internal/session"
)

type predictOptions struct {
	format      string
	noPreview   bool
	previewSize int
}

func newPredictCmd(a *app) *cobra.Command {
	opts := &predictOptions{}
	cmd := &cobra.Command{
		Use:   "predict <image>",
		Short: "Classify the skin tone in a photo",
		Long: `Upload a photo to the configured classifier and store the prediction for
the results and palette commands.

Only one prediction may run per session directory at a time. Interrupting
the command (Ctrl+C) cancels the request.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Classify using the HTTP service at CHROMATONE_API_URL
  chromatone predict selfie.jpg

  # Use a different service
  chromatone predict --api-url http://10.0.0.5:5000 selfie.jpg

  # Use Gemini (requires GOOGLE_API_KEY)
  chromatone predict --backend gemini selfie.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&opts.noPreview, "no-preview", false, "do not store a preview thumbnail")
	cmd.Flags().IntVar(&opts.previewSize, "preview-size", image.DefaultPreviewSize, "longest side of the stored preview in pixels")
	return cmd
}

// runPredict executes the predict command.
func runPredict(cmd *cobra.Command, a *app, opts *predictOptions, path string) error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := checkViewFormat(opts.format); err != nil {
		return err
	}

	upload, err := image.Load(path)
	if err != nil {
		if errors.Is(err, image.ErrInvalidInput) {
			return fmt.Errorf("%w. Please choose a JPEG, PNG, GIF or WebP photo", err)
		}
		return err
	}
	if !image.HasImageExtension(path) {
		a.logger.Warn("file has no image extension, content was accepted anyway", "path", path)
	}
	a.logger.Debug("image loaded", "name", upload.Name, "format", upload.Format, "width", upload.Width, "height", upload.Height)

	store, err := a.store()
	if err != nil {
		return err
	}

	lock, err := store.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			a.logger.Warn("failed to release prediction lock", "error", err)
		}
	}()

	var preview string
	if !opts.noPreview {
		preview, err = image.PreviewDataURL(upload, opts.previewSize)
		if err != nil {
			a.logger.Warn("failed to build preview", "error", err)
		}
	}

	predictor, err := a.newPredictor(cmd.Context())
	if err != nil {
		return err
	}

	a.say(cmd.ErrOrStderr(), "Analysing %s...\n", upload.Name)
	result, err := predictor.Predict(cmd.Context(), upload.Payload())
	if err != nil {
		return err
	}

	if err := store.Update(func(h *session.Handoff) error {
		h.RecordPrediction(result, upload.Name, preview)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}

	return writeView(cmd.OutOrStdout(), opts.format, results.Derive(result), upload.Name)
}
