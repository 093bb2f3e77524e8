// Package sample generates the random design matrices the solvers fit.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

var ErrInvalidDimensions = errors.New("invalid sample dimensions")

// Generator draws n×p matrices of independent standard-normal entries.
// A Generator is not safe for concurrent use.
type Generator struct {
	rows, cols int
	rng        *rand.Rand
}

func NewGenerator(rows, cols int, seed uint64) (*Generator, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows=%d columns=%d", ErrInvalidDimensions, rows, cols)
	}
	return &Generator{
		rows: rows,
		cols: cols,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (g *Generator) Rows() int    { return g.rows }
func (g *Generator) Columns() int { return g.cols }

// Next returns a freshly allocated matrix.
func (g *Generator) Next() *mat.Dense {
	data := make([]float64, g.rows*g.cols)
	for i := range data {
		data[i] = g.rng.NormFloat64()
	}
	return mat.NewDense(g.rows, g.cols, data)
}

// Split separates a sample into its predictor block (every column but the
// last) and its response column. Both share storage with data.
func Split(data *mat.Dense) (x mat.Matrix, y mat.Vector) {
	r, c := data.Dims()
	return data.Slice(0, r, 0, c-1), data.ColView(c - 1)
}
