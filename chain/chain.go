// Package chain provides the sample containers consumed by the diagnostics.
package chain

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyChain is returned when a chain would hold no samples.
	ErrEmptyChain = errors.New("chain: no samples")

	// ErrNonFinite is returned when a sample is NaN or ±Inf.
	ErrNonFinite = errors.New("chain: non-finite sample")

	// ErrRaggedVector is returned when vector rows do not share one width.
	ErrRaggedVector = errors.New("chain: vector rows differ in width")

	// ErrInvalidSegment is returned when a segment leaves the chain.
	ErrInvalidSegment = errors.New("chain: segment out of range")

	// ErrUnknownVariable is returned when a variable is not present.
	ErrUnknownVariable = errors.New("chain: unknown variable")
)

// Chain is an immutable ordered run of samples for one scalar quantity.
type Chain struct {
	name   string
	values []float64
}

// New creates a chain from a copy of values.
// It fails for an empty slice or for NaN/Inf samples.
func New(name string, values []float64) (*Chain, error) {
	if len(values) == 0 {
		return nil, ErrEmptyChain
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: index %d of %q", ErrNonFinite, i, name)
		}
	}

	data := make([]float64, len(values))
	copy(data, values)

	return &Chain{name: name, values: data}, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew(name string, values []float64) *Chain {
	c, err := New(name, values)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the variable name the chain was sampled for.
func (c *Chain) Name() string {
	return c.name
}

// Len returns the number of samples.
func (c *Chain) Len() int {
	return len(c.values)
}

// At returns the i-th sample.
func (c *Chain) At(i int) float64 {
	return c.values[i]
}

// Values returns a copy of the samples.
func (c *Chain) Values() []float64 {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out
}

// Mean calculates the arithmetic mean of the chain.
func (c *Chain) Mean() float64 {
	return stat.Mean(c.values, nil)
}

// Variance calculates the unbiased sample variance of the chain.
// Returns 0 for a single sample.
func (c *Chain) Variance() float64 {
	if len(c.values) < 2 {
		return 0
	}
	return stat.Variance(c.values, nil)
}

// Std calculates the standard deviation of the chain.
func (c *Chain) Std() float64 {
	return math.Sqrt(c.Variance())
}

// SegmentSpec is a window inside a chain.
type SegmentSpec struct {
	Start  int
	Length int
}

// End returns the exclusive end offset of the window.
func (s SegmentSpec) End() int {
	return s.Start + s.Length
}

// Validate checks that the window lies inside a chain of length n.
func (s SegmentSpec) Validate(n int) error {
	if s.Start < 0 || s.Length < 1 || s.End() > n {
		return fmt.Errorf("%w: [%d, %d) in chain of length %d", ErrInvalidSegment, s.Start, s.End(), n)
	}
	return nil
}

// Segment returns the samples covered by spec. The returned slice aliases
// the chain storage and must not be modified.
func (c *Chain) Segment(spec SegmentSpec) ([]float64, error) {
	if err := spec.Validate(len(c.values)); err != nil {
		return nil, err
	}
	return c.values[spec.Start:spec.End():spec.End()], nil
}

// Thin returns every k-th sample starting at index 0.
func (c *Chain) Thin(k int) *Chain {
	if k <= 1 {
		return c
	}
	result := make([]float64, 0, (len(c.values)+k-1)/k)
	for i := 0; i < len(c.values); i += k {
		result = append(result, c.values[i])
	}
	return &Chain{name: c.name, values: result}
}

// Vector is a run of fixed-width vector samples. Diagnostics treat each
// component as its own scalar chain.
type Vector struct {
	name string
	dim  int
	rows [][]float64
}

// NewVector creates a vector chain from rows of equal width.
func NewVector(name string, rows [][]float64) (*Vector, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyChain
	}
	dim := len(rows[0])
	data := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d components, want %d", ErrRaggedVector, i, len(row), dim)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d component %d of %q", ErrNonFinite, i, j, name)
			}
		}
		data[i] = append([]float64(nil), row...)
	}
	return &Vector{name: name, dim: dim, rows: data}, nil
}

// Name returns the vector variable name.
func (v *Vector) Name() string {
	return v.name
}

// Dim returns the number of components.
func (v *Vector) Dim() int {
	return v.dim
}

// Len returns the number of samples.
func (v *Vector) Len() int {
	return len(v.rows)
}

// Component returns the j-th component as a scalar chain named name[j].
func (v *Vector) Component(j int) *Chain {
	values := make([]float64, len(v.rows))
	for i, row := range v.rows {
		values[i] = row[j]
	}
	return &Chain{name: ComponentName(v.name, j), values: values}
}

// Components returns every component chain in order.
func (v *Vector) Components() []*Chain {
	out := make([]*Chain, v.dim)
	for j := range out {
		out[j] = v.Component(j)
	}
	return out
}

// ComponentName formats the scalar name of a vector component.
func ComponentName(name string, j int) string {
	return fmt.Sprintf("%s[%d]", name, j)
}
