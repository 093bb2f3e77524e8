// Package solver wraps the three least-squares strategies behind a uniform
// Method contract. Every Run draws a fresh sample and performs one fit, so
// sample generation is part of the timed work for all variants alike.
package solver

import (
	"errors"
	"fmt"

	"github.com/signalnine/olsbench/internal/sample"
)

const (
	NameLstsq  = "lstsq"
	NameModel  = "model"
	NameDirect = "direct"
)

var (
	ErrFit           = errors.New("fit failed")
	ErrUnknownMethod = errors.New("unknown method")
)

// Method performs one full sample-plus-fit when Run is called.
type Method interface {
	Name() string
	Run() error
}

// Preparer is implemented by methods that have work which must happen
// before the timer starts. The trial runner calls Prepare outside the timed
// region.
type Preparer interface {
	Prepare() error
}

// Mode selects which part of the model variant is measured.
type Mode string

const (
	// ModeConstruct times sample generation and model construction only.
	ModeConstruct Mode = "construct"
	// ModeSolve hoists sample generation and construction into Prepare and
	// times the fit alone.
	ModeSolve Mode = "solve"
	// ModeBoth times sample generation, construction and fit.
	ModeBoth Mode = "both"
)

func Modes() []Mode { return []Mode{ModeConstruct, ModeSolve, ModeBoth} }

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown measurement mode %q", s)
}

// Names lists the methods in the fixed order the harness interleaves them.
func Names() []string {
	return []string{NameLstsq, NameModel, NameDirect}
}

// Options configures a method. Rows and Columns describe the full sample:
// Columns-1 predictors plus one response column.
type Options struct {
	Rows      int
	Columns   int
	Seed      uint64
	ModelMode Mode
}

// New builds the named method with its own sample generator.
func New(name string, opts Options) (Method, error) {
	if opts.Columns < 2 {
		return nil, fmt.Errorf("%w: need at least one predictor and a response column, got columns=%d",
			sample.ErrInvalidDimensions, opts.Columns)
	}
	gen, err := sample.NewGenerator(opts.Rows, opts.Columns, opts.Seed)
	if err != nil {
		return nil, err
	}
	switch name {
	case NameLstsq:
		return &lstsqMethod{gen: gen}, nil
	case NameModel:
		mode := opts.ModelMode
		if mode == "" {
			mode = ModeConstruct
		}
		if _, err := ParseMode(string(mode)); err != nil {
			return nil, err
		}
		return &modelMethod{gen: gen, mode: mode}, nil
	case NameDirect:
		return &directMethod{gen: gen}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// NewAll builds the named methods in order. Each method gets a distinct
// seed so no two share a random stream.
func NewAll(names []string, opts Options) ([]Method, error) {
	methods := make([]Method, 0, len(names))
	for i, name := range names {
		o := opts
		o.Seed = opts.Seed + uint64(i)*0x632be59bd9b4e019
		m, err := New(name, o)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", name, err)
		}
		methods = append(methods, m)
	}
	return methods, nil
}
