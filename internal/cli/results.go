package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/results"
	"github.com/jmylchreest/chromatone/internal/session"
	"github.com/jmylchreest/chromatone/internal/tone"
)

// noResultMessage is shown instead of an error when nothing was predicted.
const noResultMessage = "No result yet. Run 'chromatone predict <image>' first."

const barWidth = 20

func newResultsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the ranked result of the last prediction",
		Long: `Show the detected tone, its confidence and up to six ranked labels from the
last prediction. The detected tone becomes the default for the palette
command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResults(cmd, a, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	return cmd
}

// runResults executes the results command.
func runResults(cmd *cobra.Command, a *app, format string) error {
	if err := checkViewFormat(format); err != nil {
		return err
	}

	store, err := a.store()
	if err != nil {
		return err
	}
	h, err := store.Load()
	if err != nil {
		return err
	}

	result, err := h.RequireResult()
	if err != nil {
		if errors.Is(err, session.ErrMissingResult) {
			if format == "json" {
				return writeView(cmd.OutOrStdout(), format, results.Derive(nil), "")
			}
			fmt.Fprintln(cmd.OutOrStdout(), noResultMessage)
			return nil
		}
		return err
	}

	view := results.Derive(result)
	if view.HasTop() && h.PredictedTone != view.TopLabel {
		h.PredictedTone = view.TopLabel
		if err := store.Save(h); err != nil {
			return fmt.Errorf("failed to store selected tone: %w", err)
		}
	}

	return writeView(cmd.OutOrStdout(), format, view, h.ImageName)
}

func checkViewFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unsupported format %q (valid: text, json)", format)
}

// writeView prints a results view as text or JSON.
func writeView(w io.Writer, format string, view results.View, imageName string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	var b strings.Builder
	if imageName != "" {
		fmt.Fprintf(&b, "Image:      %s\n", imageName)
	}
	if view.HasTop() {
		fmt.Fprintf(&b, "Skin tone:  %s\n", view.TopLabel)
	} else {
		fmt.Fprintf(&b, "Skin tone:  unknown\n")
	}
	fmt.Fprintf(&b, "Confidence: %d%%\n", view.TopConfidencePercent)

	if len(view.Entries) > 0 {
		table := NewTable("LABEL", "TONE", "PROBABILITY", "")
		table.SetAlign(2, AlignRight)
		for _, e := range view.Entries {
			table.AddRow(e.Label, tone.DisplayName(e.Label), e.Format(), bar(e.Percent))
		}
		b.WriteString("\n")
		b.WriteString(table.Render())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// bar draws percent as a block bar of barWidth cells.
func bar(percent float64) string {
	n := int(percent/100*barWidth + 0.5)
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n)
}
