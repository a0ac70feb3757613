package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/predict"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the prediction service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if a.cfg.Backend != predict.BackendHTTP {
				return fmt.Errorf("health checks are only available for the %s backend", predict.BackendHTTP)
			}

			client := predict.NewHTTPClient(a.cfg.APIURL, predict.WithLogger(a.logger.Named("http")))
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is healthy\n", client.BaseURL())
			return nil
		},
	}
}
