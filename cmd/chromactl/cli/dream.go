package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/chromacore/diagnostics"
	"github.com/arloliu/chromacore/dream"
	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

var (
	dreamValue  float64
	dreamEpochs uint32
	dreamRows   int
	dreamCols   int
)

var dreamCmd = &cobra.Command{
	Use:   "dream",
	Short: "Run a dream cycle against a gray target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		epochs := settings.Dream.Epochs
		if cmd.Flags().Changed("epochs") {
			epochs = dreamEpochs
		}

		return run(cmd, func(out io.Writer) error {
			return runDream(out, epochs)
		})
	},
}

func init() {
	RootCmd.AddCommand(dreamCmd)
	dreamCmd.Flags().Float64Var(&dreamValue, "value", 0.5, "Gray level of the target in [0, 1]")
	dreamCmd.Flags().Uint32Var(&dreamEpochs, "epochs", 0, "Cycle steps (default from config)")
	dreamCmd.Flags().IntVar(&dreamRows, "rows", 4, "Target rows")
	dreamCmd.Flags().IntVar(&dreamCols, "cols", 4, "Target columns")
}

func runDream(out io.Writer, epochs uint32) error {
	if err := checkShape(dreamRows, dreamCols); err != nil {
		return err
	}
	if dreamValue < 0 || dreamValue > 1 {
		return errs.Newf(errs.KindValidation, "parse flags", "value must be in [0, 1], got %v", dreamValue)
	}

	v := dreamValue
	target := tensor.NewUniform(layout.NewShape2D(dreamRows, dreamCols), tensor.RGB{v, v, v})
	p := settings.NewDreamPool(obs.Log())

	report := dream.Cycle(target, p, epochs)
	purged := p.PurgeStale(settings.Dream.MaxAge)
	cont := diagnostics.ContinuityFromHistory(report.History)

	fmt.Fprintf(out, "epochs       %d\n", epochs)
	fmt.Fprintf(out, "stored       %d\n", report.Stored)
	fmt.Fprintf(out, "purged       %d\n", purged)
	fmt.Fprintf(out, "pool         %d/%d\n", p.Len(), p.Capacity())
	if best, ok := p.Best(); ok {
		fmt.Fprintf(out, "best         epoch=%d score=%.6f coherence=%.6f\n", best.Epoch, best.Score, best.Coherence)
	} else {
		fmt.Fprintln(out, "best         none")
	}
	fmt.Fprintf(out, "continuity   slope=%.6f stdev=%.6f oscillation=%.6f trend=%d\n",
		cont.Slope, cont.Stdev, cont.OscillationIndex, cont.TrendClass)
	fmt.Fprintf(out, "stable       %t\n", diagnostics.ValidateContinuity(report.History))

	return nil
}
