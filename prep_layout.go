package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Remap of a naturally ordered D-dim array into the CCE-packed
 *		DFT layout (last axis padded to Nx[last]+2-(Nx[last]%2)),
 *		together with the index map from original sample positions.
 *		Ported from the original library's f_apd_s_Ub_init.
 *
 *----------------------------------------------------------------*/

import "math"

// nxPad returns the total element count of the CCE-packed DFT layout for a
// D-dim grid of sizes Nx[0..D).
func nxPad(D int, Nx [3]int) int {
	n := 1
	for d := 0; d < D; d++ {
		n *= Nx[d]
	}
	last := Nx[D-1]
	return (n / last) * (last + 2 - last%2)
}

// strides computes the natural (strd0) and DFT-packed (strd) strides for a
// D-dim grid, matching the conjugate-even storage layout of §4.1.
func strides(D int, Nx [3]int) (strd0, strd [3]int) {
	strd0[0] = 1
	for d := 1; d < D; d++ {
		strd0[d] = strd0[d-1] * Nx[d-1]
	}

	last := Nx[D-1]
	rowLen := (last/2 + 1) * 2

	// Packed row length along the last axis is rowLen; each outer axis's
	// stride is the product of all inner axes' extents using that packed
	// row length, matching the original's cs/rs computation.
	switch D {
	case 1:
		strd[0] = 1
	case 2:
		strd[1] = 1
		strd[0] = rowLen
	case 3:
		strd[2] = 1
		strd[1] = rowLen
		strd[0] = Nx[1] * rowLen
	}

	return strd0, strd
}

// remapToLayout copies s (and optionally ub) from natural D-dim order into
// the CCE-packed layout, and rewrites ix (linear indexes into the natural
// layout, one per original sample) to index into the packed layout instead.
func remapToLayout(s []float64, ub []float64, ix []int, D int, Nx [3]int, sOut []float64, ubOut []float64) {
	n := 1
	for d := 0; d < D; d++ {
		n *= Nx[d]
	}

	for i := range sOut {
		sOut[i] = 0
	}
	if ub != nil {
		for i := range ubOut {
			ubOut[i] = math.Inf(1)
		}
	}

	if D == 1 {
		copy(sOut, s[:Nx[0]])
		if ub != nil {
			copy(ubOut, ub[:Nx[0]])
		}
		return
	}

	strd0, strd := strides(D, Nx)
	natToPacked := make([]int, n)

	switch D {
	case 2:
		for i0 := 0; i0 < Nx[0]; i0++ {
			for i1 := 0; i1 < Nx[1]; i1++ {
				lin0 := i0*strd0[0] + i1*strd0[1]
				lin := i0*strd[0] + i1*strd[1]
				natToPacked[lin0] = lin
				sOut[lin] = s[lin0]
				if ub != nil {
					ubOut[lin] = ub[lin0]
				}
			}
		}
	case 3:
		for i0 := 0; i0 < Nx[0]; i0++ {
			for i1 := 0; i1 < Nx[1]; i1++ {
				for i2 := 0; i2 < Nx[2]; i2++ {
					lin0 := i0*strd0[0] + i1*strd0[1] + i2*strd0[2]
					lin := i0*strd[0] + i1*strd[1] + i2*strd[2]
					natToPacked[lin0] = lin
					sOut[lin] = s[lin0]
					if ub != nil {
						ubOut[lin] = ub[lin0]
					}
				}
			}
		}
	}

	for i, v := range ix {
		ix[i] = natToPacked[v]
	}
}
