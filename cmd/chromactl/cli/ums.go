package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/arloliu/chromacore/blob"
	"github.com/arloliu/chromacore/bridge"
	"github.com/arloliu/chromacore/format"
	"github.com/arloliu/chromacore/internal/observe"
	"github.com/arloliu/chromacore/tensor"
)

var (
	umsFlags       colorFlags
	umsCompression string
	umsEncoding    string
)

var umsCmd = &cobra.Command{
	Use:   "ums",
	Short: "Project a color into the Unified Modality Space and seal it in an envelope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, runUMS)
	},
}

func init() {
	RootCmd.AddCommand(umsCmd)
	umsFlags.register(umsCmd)
	umsCmd.Flags().StringVar(&umsCompression, "compress", "", "Payload compression (none, zstd, s2, lz4); overrides the config")
	umsCmd.Flags().StringVar(&umsEncoding, "encoding", "", "Payload encoding (half, raw); overrides the config")
}

func runUMS(out io.Writer) error {
	in, err := umsFlags.tensor()
	if err != nil {
		return err
	}

	cfg := settings
	if umsCompression != "" {
		cfg.Blob.Compression = umsCompression
	}
	if umsEncoding != "" {
		cfg.Blob.Encoding = umsEncoding
	}
	opts, err := cfg.BlobOptions()
	if err != nil {
		return err
	}
	enc, err := blob.NewUMSEncoder(opts...)
	if err != nil {
		return err
	}

	u := bridge.Project(in, bridge.Encode(in))
	data, err := enc.Encode(&u)
	if err != nil {
		return err
	}
	back, err := blob.DecodeUMS(data)
	if err != nil {
		return err
	}

	maxErr := 0.0
	for i := range u {
		maxErr = math.Max(maxErr, math.Abs(u[i]-back[i]))
	}
	fixed := tensor.MeanFixedRGB(in, cfg.Quant.Scale)
	rawSize := blob.RawPayloadSize
	if enc.Encoding() == format.TypeHalf {
		rawSize = blob.HalfPayloadSize
	}

	fmt.Fprintf(out, "encoding     %s\n", enc.Encoding())
	fmt.Fprintf(out, "compression  %s\n", enc.Compression())
	fmt.Fprintf(out, "payload      %d bytes\n", rawSize)
	fmt.Fprintf(out, "envelope     %d bytes\n", len(data))
	fmt.Fprintf(out, "energy       %.6f\n", u.Energy())
	fmt.Fprintf(out, "mean rgb     %.6f %.6f %.6f\n", fixed[0], fixed[1], fixed[2])
	fmt.Fprintf(out, "fingerprint  %s\n", observe.Hex(u.Fingerprint()))
	fmt.Fprintf(out, "decoded      %s\n", observe.Hex(back.Fingerprint()))
	fmt.Fprintf(out, "max error    %.3g\n", maxErr)

	return nil
}
