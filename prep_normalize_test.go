package apdemod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_absScaledMaxAbs(t *testing.T) {
	in := []float64{-2, 4, -8, 1}
	out := make([]float64, len(in))

	maxVal := absScaledMaxAbs(in, out)

	assert.Equal(t, 8.0, maxVal)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 1, 0.125}, out, 1e-12)
}

func Test_absScaledMaxAbs_allZero(t *testing.T) {
	in := []float64{0, 0, 0}
	out := make([]float64, len(in))

	maxVal := absScaledMaxAbs(in, out)

	assert.Equal(t, 0.0, maxVal)
	assert.InDeltaSlice(t, []float64{0, 0, 0}, out, 1e-12)
}
