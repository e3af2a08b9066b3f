package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACF(t *testing.T) {
	phi := 0.7
	c := mustChain(ar1Sample(20000, phi, 0, 300))

	acf := ACF(c, 5)
	require.Len(t, acf, 6)
	assert.Equal(t, 1.0, acf[0])
	assert.InDelta(t, phi, acf[1], 0.03)
	assert.InDelta(t, phi*phi, acf[2], 0.04)
}

func TestACFClampsLag(t *testing.T) {
	acf := ACF(mustChain([]float64{1, 2, 3, 4}), 10)
	assert.Len(t, acf, 4)
}

func TestACFConstant(t *testing.T) {
	assert.Nil(t, ACF(mustChain(constant(50, 2)), 5))
}

func TestAutocovariance(t *testing.T) {
	// mean 2.5; deviations -1.5 -0.5 0.5 1.5
	acov := autocovariance([]float64{1, 2, 3, 4}, 1)
	require.Len(t, acov, 2)
	assert.InDelta(t, 5.0/4, acov[0], 1e-12)
	assert.InDelta(t, (0.75-0.25+0.75)/4, acov[1], 1e-12)
}
