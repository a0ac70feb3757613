// Package cli provides the command-line interface for ChromaTone.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromatone/internal/session"
	"github.com/jmylchreest/chromatone/internal/version"
)

// app carries state shared by every subcommand of one root command.
type app struct {
	cfg     Config
	verbose bool
	quiet   bool
	logger  hclog.Logger
}

// NewRootCmd builds the command tree. Configuration is read from the
// environment when the tree is built and flags override it.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig(), logger: hclog.NewNullLogger()}
	a.cfg.ApplyEnv(os.Getenv)

	rootCmd := &cobra.Command{
		Use:   "chromatone",
		Short: "Skin tone prediction and clothing colour palettes",
		Long: `ChromaTone sends a photo to a skin tone classifier, shows the ranked
prediction and suggests clothing colours for the detected tone and a chosen
undertone. Palettes can be exported as PNG images.

Typical flow:
  chromatone predict selfie.jpg
  chromatone results
  chromatone palette --undertone cool --download`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	a.cfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPredictCmd(a),
		newResultsCmd(a),
		newPaletteCmd(a),
		newTonesCmd(),
		newSessionCmd(a),
		newHealthCmd(a),
	)
	return rootCmd
}

// Execute runs the root command with a context cancelled on SIGINT or
// SIGTERM. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "chromatone",
		Level:  level,
		Output: w,
		Color:  hclog.AutoColor,
	})
}

// store opens the hand-off store for the configured session directory.
func (a *app) store() (*session.Store, error) {
	dir, err := a.cfg.ResolveSessionDir()
	if err != nil {
		return nil, err
	}
	return session.NewStore(dir, a.logger.Named("session")), nil
}

// say prints progress output unless --quiet is set.
func (a *app) say(w io.Writer, format string, args ...any) {
	if a.quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
