package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/palette"
	"github.com/jmylchreest/chromatone/internal/tone"
)

func newTonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tones",
		Short: "List known skin tones and their undertones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := palette.Standard()
			table := NewTable("ID", "NAME", "UNDERTONES")
			for _, l := range tone.All() {
				table.AddRow(l.ID, l.Name, strings.Join(catalog.UndertonesFor(l.Name), ", "))
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\nUndertones offered: %s\n",
				table.Render(), strings.Join(catalog.Undertones(), ", "))
			return err
		},
	}
}
