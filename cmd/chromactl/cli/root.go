// Package cli implements the chromactl commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/chromacore/config"
	"github.com/arloliu/chromacore/internal/observe"
)

var (
	configPath string
	verbose    bool
	jsonLogs   bool

	settings config.Config
	obs      = observe.Discard()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "chromactl",
	Short: "Chromatic/spectral transcoding toolkit",
	Long: `chromactl drives the chromacore pipeline: chromatic to spectral round trips,
Unified Modality Space projection with binary envelopes, and dream cycles.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (.yaml, .yml or .json)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Write logs as JSON")
}

// setup loads the configuration and builds the observer shared by all
// commands. Flags override the file.
func setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if verbose {
		cfg.Log.Verbose = true
	}
	if jsonLogs {
		cfg.Log.Format = "json"
	}

	settings = cfg
	obs = settings.Observer(cmd.ErrOrStderr())

	return nil
}

// run wraps a command body in a span and logs its start, finish and failure.
func run(cmd *cobra.Command, body func(out io.Writer) error) error {
	_, span := obs.StartSpan(cmd.Context(), "chromactl."+cmd.Name())
	defer span.End()

	obs.Log().Info().Str("command", cmd.Name()).Msg("command started")
	if err := body(cmd.OutOrStdout()); err != nil {
		span.RecordError(err)
		obs.Log().Error().Str("command", cmd.Name()).Err(err).Msg("command failed")

		return err
	}
	obs.Log().Info().Str("command", cmd.Name()).Msg("command finished")

	return nil
}
