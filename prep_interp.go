package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Nearest-grid interpolation of a non-uniformly sampled signal
 *		onto a refined uniform grid, following Eq. 23 of
 *		M. Gabrielaitis, IEEE Trans. Signal Process., vol. 69,
 *		pp. 4039-4054, 2021. Ported from the original library's
 *		f_apd_interpolation.
 *
 *		Unlike the original, which overloads the sign bit of the
 *		index map to mark a "shadowed" (displaced) sample, this
 *		keeps a dedicated per-grid-cell record -- the original's own
 *		design notes flag the sign trick as fragile when the chosen
 *		index is 0.
 *
 *----------------------------------------------------------------*/

import "math"

// gridSlot tracks, for one uniform-grid cell, which original sample (if
// any) currently owns it and how far that sample was from the cell center.
type gridSlot struct {
	owner    int
	distSq   float64
	occupied bool
}

// interpolate snaps each of the ns scattered samples in s (with column-major
// D-dim coordinates t) onto the nearest node of a uniform grid of size
// par.Nr[0..D), following the nearest-wins tie-break. ixOut[i] receives the
// linear index (natural order) of the grid node sample i was assigned to,
// regardless of whether it "won" the tie-break for that node.
func interpolate(s []float64, par *Params, ub []float64, t []float64, sOut []float64, ubOut []float64, ixOut []int) {
	ns := par.ns
	D := par.D

	nr := 1
	cumnr := make([]int, D)
	for d := 0; d < D; d++ {
		nr *= par.Nr[d]
		if d == 0 {
			cumnr[d] = par.Nr[d]
		} else {
			cumnr[d] = par.Nr[d] * cumnr[d-1]
		}
	}

	for i := range sOut {
		sOut[i] = 0
	}
	if ub != nil {
		for i := range ubOut {
			ubOut[i] = math.Inf(1)
		}
	}

	tmin := make([]float64, D)
	tmax := make([]float64, D)
	dt := make([]float64, D)
	for d := 0; d < D; d++ {
		lo, hi := t[d*ns], t[d*ns]
		for i := 1; i < ns; i++ {
			v := t[d*ns+i]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		tmin[d] = lo
		tmax[d] = hi
		dt[d] = (hi - lo) / float64(par.Nr[d]-1)
	}

	slots := make([]gridSlot, nr)
	ixAux := make([]int, D)

	for i := 0; i < ns; i++ {
		r2 := 0.0
		for d := 0; d < D; d++ {
			v := t[d*ns+i]
			idx := int(math.Round((v - tmin[d]) / dt[d]))
			ixAux[d] = idx
			resid := v - tmin[d] - float64(idx)*dt[d]
			r2 += resid * resid
		}

		ix := ixAux[0]
		for d := 1; d < D; d++ {
			ix += ixAux[d] * cumnr[d-1]
		}

		ixOut[i] = ix

		slot := &slots[ix]
		if !slot.occupied || r2 < slot.distSq {
			if slot.occupied {
				// The previous owner is displaced; it keeps a valid index
				// (same grid cell) but no longer contributes its value.
			}
			sOut[ix] = s[i]
			if ub != nil {
				ubOut[ix] = ub[i]
			}
			slot.owner = i
			slot.distSq = r2
			slot.occupied = true
		}
	}
}
