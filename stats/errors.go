package stats

import "errors"

// Error categories. Every failure returned by this package matches exactly
// one of them via errors.Is.
var (
	// ErrInvalidArgument indicates an out-of-range parameter.
	ErrInvalidArgument = errors.New("stats: invalid argument")

	// ErrInsufficientData indicates a chain too short for the requested
	// windowing or for stable estimation.
	ErrInsufficientData = errors.New("stats: insufficient data")

	// ErrShapeMismatch indicates inconsistent array dimensions.
	ErrShapeMismatch = errors.New("stats: shape mismatch")

	// ErrDegenerateVariance indicates a zero-variance case the statistic
	// cannot be defined for.
	ErrDegenerateVariance = errors.New("stats: degenerate variance")
)

// Specific failures. Each also matches its category.
var (
	// ErrInvalidWindow is returned by Geweke for bad window parameters or
	// windows shorter than the spectral estimator accepts.
	ErrInvalidWindow = kind(ErrInvalidArgument, "stats: invalid window")

	// ErrInvalidQuantile is returned when a quantile lies outside (0, 1).
	ErrInvalidQuantile = kind(ErrInvalidArgument, "stats: quantile outside (0, 1)")

	// ErrInsufficientChains is returned when fewer than two chains are given.
	ErrInsufficientChains = kind(ErrInvalidArgument, "stats: at least two chains required")

	// ErrInsufficientLength is returned when chains hold fewer than two samples.
	ErrInsufficientLength = kind(ErrInsufficientData, "stats: at least two samples per chain required")

	// ErrNegativeValue is returned when a discrepancy input is negative.
	ErrNegativeValue = kind(ErrInvalidArgument, "stats: negative value under square root")
)

// kindError is a sentinel that also reports its category.
type kindError struct {
	msg      string
	category error
}

func kind(category error, msg string) error {
	return &kindError{msg: msg, category: category}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.category }
