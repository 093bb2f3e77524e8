package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/signalnine/olsbench/internal/sample"
)

// FitDirect computes β = (XᵗX)⁻¹XᵗY with nothing but transpose, multiply
// and inverse. A singular or ill-conditioned XᵗX is reported as ErrFit.
func FitDirect(x mat.Matrix, y mat.Vector) (*mat.VecDense, error) {
	xt := x.T()

	var xtx mat.Dense
	xtx.Mul(xt, x)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: direct: invert XᵗX: %w", ErrFit, err)
	}

	var proj mat.Dense
	proj.Mul(&inv, xt)

	var beta mat.VecDense
	beta.MulVec(&proj, y)
	return &beta, nil
}

type directMethod struct {
	gen *sample.Generator
}

func (m *directMethod) Name() string { return NameDirect }

func (m *directMethod) Run() error {
	x, y := sample.Split(m.gen.Next())
	_, err := FitDirect(x, y)
	return err
}
