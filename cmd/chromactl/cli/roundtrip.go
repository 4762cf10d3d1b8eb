package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/diagnostics"
	"github.com/arloliu/chromacore/tensor"
)

var roundtripFlags colorFlags

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Encode a uniform color to a spectrum and decode it back",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, runRoundtrip)
	},
}

func init() {
	RootCmd.AddCommand(roundtripCmd)
	roundtripFlags.register(roundtripCmd)
}

func runRoundtrip(out io.Writer) error {
	in, err := roundtripFlags.tensor()
	if err != nil {
		return err
	}

	spectrum := bridge.Encode(in)
	back := bridge.Decode(spectrum)
	delta := bridge.RoundTripDelta(in)
	stats := diagnostics.SpectralEnergyBalance(spectrum)
	bins := bridge.HueToBinWeights(roundtripFlags.hsl().H)
	wa, wb := bridge.RecordSeamWeights(roundtripFlags.hsl().H, settings.Bridge.SeamEpsilon)
	got := tensor.MeanHSL(back)
	want := tensor.MeanHSL(in)

	fmt.Fprintf(out, "input     h=%.6f s=%.6f l=%.6f\n", want.H, want.S, want.L)
	fmt.Fprintf(out, "decoded   h=%.6f s=%.6f l=%.6f\n", got.H, got.S, got.L)
	fmt.Fprintf(out, "delta     dh=%.6f ds=%.6f dl=%.6f\n", delta.H, delta.S, delta.L)
	fmt.Fprintf(out, "spectrum  energy=%.6f centroid=%.3fHz coherence=%.6f\n", stats.EnergyTotal, stats.Centroid, stats.Coherence)
	fmt.Fprintf(out, "seam      bin%d=%.6f bin%d=%.6f\n", bins.A, wa, bins.B, wb)
	fmt.Fprintf(out, "valid     %t\n", bridge.ValidateRoundTrip(in))

	return nil
}
