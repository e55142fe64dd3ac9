package apdemod

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicParams(n int) *Params {
	return &Params{
		Algorithm: Basic,
		D:         1,
		Fs:        [3]float64{float64(n)},
		Fc:        [3]float64{float64(n) / 2},
		Ni:        1,
		Ns:        [3]int{n, 0, 0},
		Cp:        1,
		Im:        []int{0},
		Ie:        []int{0},
	}
}

func Test_Demodulate_initialSnapshotIsAbsSignal(t *testing.T) {
	n := 16
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = float64(i) - 8
	}

	par := basicParams(n)
	modOut := make([]float64, len(par.Im)*n)
	errOut := make([]float64, len(par.Ie))

	_, err := Demodulate(signal, par, nil, nil, modOut, errOut)
	require.NoError(t, err)

	for i := range signal {
		assert.InDeltaf(t, math.Abs(signal[i]), modOut[i], 1e-9, "index %d", i)
	}

	// The initial-estimate infeasibility reading is sqrt(Sum(s_abs^2)/nxReal),
	// with s_abs the max-normalized |signal|.
	maxAbs := 0.0
	for _, v := range signal {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}
	e0 := 0.0
	for _, v := range signal {
		sAbs := math.Abs(v) / maxAbs
		e0 += sAbs * sAbs
	}
	wantErr0 := math.Sqrt(e0 / float64(n))
	assert.InDelta(t, wantErr0, errOut[0], 1e-9)
}

func Test_Demodulate_fullSpectrum_convergesInOneIteration(t *testing.T) {
	n := 16
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 3.0 // constant: already fully inside the retained band
	}

	par := basicParams(n)
	par.Im = []int{1}
	par.Ie = []int{1}
	modOut := make([]float64, len(par.Im)*n)
	errOut := make([]float64, len(par.Ie))

	iter, err := Demodulate(signal, par, nil, nil, modOut, errOut)
	require.NoError(t, err)
	assert.Equal(t, 1, iter)

	for i := range signal {
		assert.InDeltaf(t, 3.0, modOut[i], 1e-7, "index %d", i)
	}
	assert.InDelta(t, 0.0, errOut[0], 1e-7)
}

func Test_Demodulate_EtNonPositive_runsExactlyNi(t *testing.T) {
	n := 16
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(float64(i))
	}

	par := basicParams(n)
	par.Ni = 5
	par.Et = -1
	par.Im = []int{5}
	par.Ie = []int{5}
	modOut := make([]float64, len(par.Im)*n)
	errOut := make([]float64, len(par.Ie))

	iter, err := Demodulate(signal, par, nil, nil, modOut, errOut)
	require.NoError(t, err)
	assert.Equal(t, 5, iter)
}

func Test_Demodulate_upperBound_respected(t *testing.T) {
	n := 16
	signal := make([]float64, n)
	ub := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(float64(i)*0.5) * 2
		ub[i] = 3
	}

	par := basicParams(n)
	par.Ni = 50
	par.Et = 1e-6
	par.Im = []int{50}
	par.Ie = []int{50}
	modOut := make([]float64, len(par.Im)*n)
	errOut := make([]float64, len(par.Ie))

	_, err := Demodulate(signal, par, ub, nil, modOut, errOut)
	require.NoError(t, err)

	for i := range signal {
		assert.LessOrEqualf(t, modOut[i], ub[i]+1e-6, "index %d", i)
		assert.GreaterOrEqualf(t, modOut[i], math.Abs(signal[i])-1e-6, "index %d", i)
	}
}

func Test_Demodulate_rejectsBadAlgorithm(t *testing.T) {
	par := basicParams(16)
	par.Algorithm = Algorithm(99)
	signal := make([]float64, 16)
	modOut := make([]float64, 16)
	errOut := make([]float64, 1)

	_, err := Demodulate(signal, par, nil, nil, modOut, errOut)
	require.Error(t, err)

	var apErr *Error
	require.ErrorAs(t, err, &apErr)
	assert.Equal(t, KindBadAlgorithm, apErr.Kind)
}

func Test_Demodulate_accelerated_converges(t *testing.T) {
	n := 32
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 2 + math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	par := &Params{
		Algorithm: Accelerated,
		D:         1,
		Fs:        [3]float64{float64(n)},
		Fc:        [3]float64{4},
		Et:        1e-8,
		Ni:        200,
		Ns:        [3]int{n, 0, 0},
		Cp:        1,
		Br:        true,
		Im:        []int{200},
		Ie:        []int{200},
	}
	modOut := make([]float64, len(par.Im)*n)
	errOut := make([]float64, len(par.Ie))

	iter, err := Demodulate(signal, par, nil, nil, modOut, errOut)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, iter, 1)
	assert.LessOrEqual(t, iter, 200)

	for i := range signal {
		assert.GreaterOrEqualf(t, modOut[i], math.Abs(signal[i])-1e-6, "index %d", i)
	}
}
