package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/signalnine/olsbench/internal/sample"
)

// FitLstsq solves min ||y - Xβ|| without an intercept using gonum's QR based
// least-squares solve.
func FitLstsq(x mat.Matrix, y mat.Vector) (*mat.VecDense, error) {
	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil, fmt.Errorf("%w: lstsq: %w", ErrFit, err)
	}
	return &beta, nil
}

type lstsqMethod struct {
	gen *sample.Generator
}

func (m *lstsqMethod) Name() string { return NameLstsq }

func (m *lstsqMethod) Run() error {
	x, y := sample.Split(m.gen.Next())
	_, err := FitLstsq(x, y)
	return err
}
