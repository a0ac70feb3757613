package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/image"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the stored prediction",
	}

	var format string
	var withPreview bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored hand-off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			h, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				if !withPreview {
					h.ImagePreview = ""
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(h)
			}

			if h.Empty() {
				fmt.Fprintln(out, noResultMessage)
				return nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Session:        %s\n", store.Path())
			if !h.UpdatedAt.IsZero() {
				fmt.Fprintf(&b, "Updated:        %s\n", h.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(&b, "Image:          %s\n", valueOr(h.ImageName, "-"))
			if h.Result != nil {
				fmt.Fprintf(&b, "Detected tone:  %s\n", valueOr(h.Result.Tone, "-"))
			}
			fmt.Fprintf(&b, "Selected tone:  %s\n", valueOr(h.PredictedTone, "-"))
			if h.ImagePreview != "" {
				if img, err := image.DecodeDataURL(h.ImagePreview); err != nil {
					a.logger.Warn("stored preview is unreadable", "error", err)
					fmt.Fprintf(&b, "Preview:        unreadable\n")
				} else {
					size := img.Bounds().Size()
					fmt.Fprintf(&b, "Preview:        %dx%d\n", size.X, size.Y)
				}
			}
			_, err = fmt.Fprint(out, b.String())
			return err
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	showCmd.Flags().BoolVar(&withPreview, "with-preview", false, "include the preview data URL in JSON output")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored hand-off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			a.say(cmd.ErrOrStderr(), "Session cleared\n")
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
