package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/signalnine/olsbench/internal/sample"
)

// Model is an ordinary least-squares model without an intercept. NewModel
// only records and checks the design; the solve happens in Fit.
type Model struct {
	endog   *mat.VecDense
	exog    *mat.Dense
	nobs    int
	nparams int
}

// FitResult holds the estimates from Model.Fit.
type FitResult struct {
	Params  *mat.VecDense
	SSR     float64
	Scale   float64
	DFResid int
}

// NewModel copies y and x into a new model. The caller may reuse its
// matrices afterwards.
func NewModel(y mat.Vector, x mat.Matrix) (*Model, error) {
	r, c := x.Dims()
	if y.Len() != r {
		return nil, fmt.Errorf("model: response has %d rows, design has %d", y.Len(), r)
	}
	if c == 0 {
		return nil, errors.New("model: design has no columns")
	}
	return &Model{
		endog:   mat.VecDenseCopyOf(y),
		exog:    mat.DenseCopyOf(x),
		nobs:    r,
		nparams: c,
	}, nil
}

func (m *Model) NObs() int    { return m.nobs }
func (m *Model) DFResid() int { return m.nobs - m.nparams }

// Fit factorizes the design with QR and solves for the coefficients.
func (m *Model) Fit() (*FitResult, error) {
	if m.nobs < m.nparams {
		return nil, fmt.Errorf("%w: model: %d observations for %d parameters", ErrFit, m.nobs, m.nparams)
	}

	var qr mat.QR
	qr.Factorize(m.exog)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, m.endog); err != nil {
		return nil, fmt.Errorf("%w: model: %w", ErrFit, err)
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(m.exog, &beta)
	resid.SubVec(m.endog, &fitted)
	ssr := mat.Dot(&resid, &resid)

	res := &FitResult{
		Params:  &beta,
		SSR:     ssr,
		DFResid: m.DFResid(),
	}
	if res.DFResid > 0 {
		res.Scale = ssr / float64(res.DFResid)
	}
	return res, nil
}

type modelMethod struct {
	gen      *sample.Generator
	mode     Mode
	prepared *Model
}

func (m *modelMethod) Name() string { return NameModel }

func (m *modelMethod) Mode() Mode { return m.mode }

func (m *modelMethod) Prepare() error {
	if m.mode != ModeSolve {
		return nil
	}
	model, err := m.construct()
	if err != nil {
		return err
	}
	m.prepared = model
	return nil
}

func (m *modelMethod) Run() error {
	switch m.mode {
	case ModeSolve:
		if m.prepared == nil {
			return errors.New("model: solve mode requires Prepare before Run")
		}
		model := m.prepared
		m.prepared = nil
		_, err := model.Fit()
		return err
	case ModeBoth:
		model, err := m.construct()
		if err != nil {
			return err
		}
		_, err = model.Fit()
		return err
	default:
		_, err := m.construct()
		return err
	}
}

func (m *modelMethod) construct() (*Model, error) {
	x, y := sample.Split(m.gen.Next())
	return NewModel(y, x)
}
