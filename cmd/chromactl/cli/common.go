package cli

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/chromacore/errs"
	"github.com/arloliu/chromacore/layout"
	"github.com/arloliu/chromacore/tensor"
)

// colorFlags are shared by the commands that build a uniform input tensor.
type colorFlags struct {
	hue, sat, light float64
	rows, cols      int
}

func (f *colorFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.hue, "hue", 0, "Hue in radians")
	cmd.Flags().Float64Var(&f.sat, "sat", 0.5, "Saturation in [0, 1]")
	cmd.Flags().Float64Var(&f.light, "light", 0.5, "Lightness in [0, 1]")
	cmd.Flags().IntVar(&f.rows, "rows", 2, "Tensor rows")
	cmd.Flags().IntVar(&f.cols, "cols", 2, "Tensor columns")
}

func (f *colorFlags) hsl() tensor.HSL {
	return tensor.HSL{H: tensor.NormalizeHue(f.hue), S: f.sat, L: f.light}
}

// tensor validates the flags and builds the uniform input.
func (f *colorFlags) tensor() (*tensor.Chromatic, error) {
	if err := checkShape(f.rows, f.cols); err != nil {
		return nil, err
	}
	if f.sat < 0 || f.sat > 1 || f.light < 0 || f.light > 1 {
		return nil, errs.Newf(errs.KindValidation, "parse flags",
			"saturation and lightness must be in [0, 1], got %v and %v", f.sat, f.light)
	}

	return tensor.NewUniform(layout.NewShape2D(f.rows, f.cols), tensor.HSLToRGB(f.hsl())), nil
}

func checkShape(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return errs.Newf(errs.KindValidation, "parse flags", "rows and cols must be positive, got %dx%d", rows, cols)
	}

	return nil
}
