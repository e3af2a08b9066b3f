package chain

import (
	"fmt"
	"sort"
)

// Set maps variable names to their parallel runs.
type Set struct {
	chains map[string][]*Chain
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{chains: make(map[string][]*Chain)}
}

// Add appends c as another run of variable name.
func (s *Set) Add(name string, c *Chain) {
	s.chains[name] = append(s.chains[name], c)
}

// AddVector appends each component of v as a run of its component name.
func (s *Set) AddVector(v *Vector) {
	for _, c := range v.Components() {
		s.Add(c.Name(), c)
	}
}

// Chains returns the runs recorded for name.
func (s *Set) Chains(name string) ([]*Chain, error) {
	chains, ok := s.chains[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	out := make([]*Chain, len(chains))
	copy(out, chains)
	return out, nil
}

// Variables returns the variable names in sorted order.
func (s *Set) Variables() []string {
	names := make([]string, 0, len(s.chains))
	for name := range s.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of variables.
func (s *Set) Len() int {
	return len(s.chains)
}

// Source yields ordered samples for named scalar quantities, e.g. one
// sampler run or one trace file.
type Source interface {
	Variables() []string
	Samples(name string) ([]float64, error)
}

// Collect builds a set holding one chain per source for every variable
// that all sources provide. Variables missing from any run are skipped.
func Collect(runs ...Source) (*Set, error) {
	set := NewSet()
	if len(runs) == 0 {
		return set, nil
	}

	counts := make(map[string]int)
	for _, run := range runs {
		seen := make(map[string]bool)
		for _, name := range run.Variables() {
			if !seen[name] {
				seen[name] = true
				counts[name]++
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name, n := range counts {
		if n == len(runs) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for i, run := range runs {
		for _, name := range names {
			values, err := run.Samples(name)
			if err != nil {
				return nil, fmt.Errorf("run %d: %w", i, err)
			}
			c, err := New(name, values)
			if err != nil {
				return nil, fmt.Errorf("run %d: %w", i, err)
			}
			set.Add(name, c)
		}
	}

	return set, nil
}
