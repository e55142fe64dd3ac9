package apdemod

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validParams() *Params {
	return &Params{
		Algorithm: Basic,
		D:         1,
		Fs:        [3]float64{16},
		Fc:        [3]float64{4},
		Et:        1e-6,
		Ni:        10,
		Ns:        [3]int{8, 0, 0},
		Cp:        1,
		Im:        []int{0},
		Ie:        []int{0},
	}
}

func Test_validateInput_acceptsValid(t *testing.T) {
	signal := make([]float64, 8)
	assert.Nil(t, validateInput(signal, validParams(), nil, nil))
}

func Test_validateInput_badDimension(t *testing.T) {
	par := validParams()
	par.D = 4
	assert.Equal(t, KindBadDimension, validateInput(make([]float64, 8), par, nil, nil).Kind)
}

func Test_validateInput_badFc2(t *testing.T) {
	par := validParams()
	par.Fc[0] = 9 // exceeds Fs/2 = 8
	assert.Equal(t, KindBadFc2, validateInput(make([]float64, 8), par, nil, nil).Kind)
}

func Test_validateInput_badNi(t *testing.T) {
	par := validParams()
	par.Ni = 0
	assert.Equal(t, KindBadNi, validateInput(make([]float64, 8), par, nil, nil).Kind)
}

func Test_validateInput_scheduleMustBeIncreasing(t *testing.T) {
	par := validParams()
	par.Im = []int{0, 3, 2}
	assert.Equal(t, KindBadImOrder, validateInput(make([]float64, 8), par, nil, nil).Kind)
}

func Test_validateInput_nonFiniteSignal(t *testing.T) {
	par := validParams()
	signal := make([]float64, 8)
	signal[3] = math.NaN()
	assert.Equal(t, KindBadSignal, validateInput(signal, par, nil, nil).Kind)
}

func Test_validateInput_upperBoundMustDominate(t *testing.T) {
	par := validParams()
	signal := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	ub := []float64{1, 2, 3, 4, 5, 6, 7, 0} // too small at index 7
	assert.Equal(t, KindBadUpperBound, validateInput(signal, par, ub, nil).Kind)
}

func Test_validateInput_coordMode_checksNr(t *testing.T) {
	par := validParams()
	par.Ns[0] = 8
	par.Nr = [3]int{1, 0, 0} // must be >1
	signal := make([]float64, 8)
	coords := make([]float64, 8)
	assert.Equal(t, KindBadNr, validateInput(signal, par, nil, coords).Kind)
}
