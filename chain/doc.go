// Package chain provides the sample containers consumed by the diagnostics.
//
// A Chain is one run's ordered, immutable sequence of samples for a scalar
// quantity. A Set groups the parallel runs of every variable, which is what
// multi-chain diagnostics such as Gelman-Rubin need.
//
// # Creating Chains
//
// Create a chain from sampler output:
//
//	c, err := chain.New("alpha", samples)
//	if err != nil {
//	    return err // empty or non-finite input
//	}
//
// Vector quantities are split into scalar components:
//
//	v, err := chain.NewVector("beta", rows) // rows: n x d
//	for _, c := range v.Components() {
//	    fmt.Println(c.Name()) // beta[0], beta[1], ...
//	}
//
// # Windows and Thinning
//
//	window, err := c.Segment(chain.SegmentSpec{Start: 0, Length: 100})
//	thinned := c.Thin(5)
//
// # Chain Sets
//
// Collect one chain per run for every variable the runs share:
//
//	run1, _ := chain.LoadCSV("run1.csv", nil)
//	run2, _ := chain.LoadCSV("run2.csv", nil)
//	set, err := chain.Collect(run1, run2)
//
// Any sampler can feed Collect by implementing Source:
//
//	type Source interface {
//	    Variables() []string
//	    Samples(name string) ([]float64, error)
//	}
//
// # CSV Options
//
//	opts := chain.DefaultCSVOptions()
//	opts.Columns = []string{"alpha", "beta[0]"}
//	trace, err := chain.LoadCSVFromReader(reader, opts)
package chain
