package apdemod

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, D int, Nx [3]int) {
	t.Helper()

	n := 1
	for d := 0; d < D; d++ {
		n *= Nx[d]
	}

	rng := rand.New(rand.NewSource(1))
	natural := make([]float64, n)
	for i := range natural {
		natural[i] = rng.NormFloat64()
	}

	packed := make([]float64, nxPad(D, Nx))
	ix := make([]int, n)
	for i := range ix {
		ix[i] = i
	}
	remapToLayout(natural, nil, ix, D, Nx, packed, nil)

	want := append([]float64(nil), packed...)

	plan, err := newDFTPlan(D, Nx)
	require.Nil(t, err)

	plan.forward(packed)
	plan.backward(packed)

	for i, idx := range ix {
		assert.InDeltaf(t, natural[i], packed[idx], 1e-9, "sample %d", i)
	}
	_ = want
}

func Test_DFT_roundTrip_1D_small(t *testing.T)  { roundTrip(t, 1, [3]int{8, 0, 0}) }
func Test_DFT_roundTrip_1D_large(t *testing.T)  { roundTrip(t, 1, [3]int{256, 0, 0}) }
func Test_DFT_roundTrip_2D(t *testing.T)        { roundTrip(t, 2, [3]int{11, 13, 0}) }
func Test_DFT_roundTrip_3D(t *testing.T)        { roundTrip(t, 3, [3]int{6, 5, 7}) }

func Test_projectLowpass_idempotent(t *testing.T) {
	D := 2
	Nx := [3]int{16, 16, 0}
	n := Nx[0] * Nx[1]

	rng := rand.New(rand.NewSource(2))
	natural := make([]float64, n)
	for i := range natural {
		natural[i] = rng.NormFloat64()
	}

	packed := make([]float64, nxPad(D, Nx))
	ix := make([]int, n)
	for i := range ix {
		ix[i] = i
	}
	remapToLayout(natural, nil, ix, D, Nx, packed, nil)

	plan, err := newDFTPlan(D, Nx)
	require.Nil(t, err)

	iL := [3]int{3, 3, 0}
	iR := [3]int{Nx[0] - iL[0], Nx[1] - iL[1], 0}

	once := append([]float64(nil), packed...)
	plan.projectLowpass(once, iL, iR)

	twice := append([]float64(nil), once...)
	plan.projectLowpass(twice, iL, iR)

	for i := range once {
		assert.InDeltaf(t, once[i], twice[i], 1e-8, "index %d", i)
	}
}
