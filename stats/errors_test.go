package stats

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	categories := []error{ErrInvalidArgument, ErrInsufficientData, ErrShapeMismatch, ErrDegenerateVariance}

	tests := []struct {
		err      error
		category error
	}{
		{ErrInvalidWindow, ErrInvalidArgument},
		{ErrInvalidQuantile, ErrInvalidArgument},
		{ErrInsufficientChains, ErrInvalidArgument},
		{ErrNegativeValue, ErrInvalidArgument},
		{ErrInsufficientLength, ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("variable %q: %w", "theta", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
			for _, category := range categories {
				assert.Equal(t, category == tt.category, errors.Is(wrapped, category), category.Error())
			}
		})
	}
}
