package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Snapshot scheduling and read-out shared by the three AP
 *		loop bodies, ported from the schedule-walking logic
 *		embedded in f_apd_basic/f_apd_accelerated/f_apd_projected.
 *
 *----------------------------------------------------------------*/

import "math"

// scheduleCursor walks a strictly increasing, non-negative snapshot
// schedule (Im or Ie), one due() call per completed iteration index.
type scheduleCursor struct {
	sched []int
	pos   int
}

func newScheduleCursor(sched []int) *scheduleCursor {
	return &scheduleCursor{sched: sched}
}

// due reports whether the next unconsumed entry equals iter, consuming it
// if so.
func (c *scheduleCursor) due(iter int) bool {
	if c.pos >= len(c.sched) || c.sched[c.pos] != iter {
		return false
	}
	c.pos++
	return true
}

// singletonAt reports whether this schedule is the one-entry [ni] shape
// that earns a synthesized snapshot when convergence happens early.
func (c *scheduleCursor) singletonAt(ni int) bool {
	return len(c.sched) == 1 && c.sched[0] == ni
}

// writeModSnapshot descales one modulator iterate (in DFT-packed layout)
// back to original sample order and units, writing it into dst at slot
// slot (each slot is ns entries wide).
func writeModSnapshot(dst []float64, slot, ns int, buf []float64, ixMap []int, maxAbs, cp float64) {
	base := slot * ns
	for i := 0; i < ns; i++ {
		dst[base+i] = signedPow(buf[ixMap[i]]*maxAbs, cp)
	}
}

// writeErrSnapshot un-normalizes one infeasibility error reading into dst
// at slot.
func writeErrSnapshot(dst []float64, slot int, e, maxAbs, denom float64) {
	dst[slot] = maxAbs * math.Sqrt(e/denom)
}

// writeInitialErrSnapshot records the iteration-0 infeasibility reading.
// The original reports this one value as plain sqrt(E/nx), without the
// max_s_abs rescale applied to every later reading and without the
// algorithm-specific denom (2*nx for Projected) used by its own Etol test
// - both readouts happen before any projection, so "E" here is always
// Sum(s_abs^2) over nx real samples.
func writeInitialErrSnapshot(dst []float64, slot int, e0 float64, nx float64) {
	dst[slot] = math.Sqrt(e0 / nx)
}

// hasConverged reports whether infeasibility e has reached the Et-derived
// threshold etol. Et<=0 means "run to Ni regardless", so it never reports
// converged.
func hasConverged(par *Params, e, etol float64) bool {
	return par.Et > 0 && e <= etol
}

// apContext bundles everything the three AP loop bodies need beyond their
// own iterate variables: the committed DFT plan, the fixed lower/upper
// bounds, the cutoff index pair, the caller-facing parameters, and the
// output buffers.
type apContext struct {
	plan   *dftPlan
	sAbs   []float64
	ub     []float64
	iL, iR [3]int
	par    *Params
	maxAbs float64
	ixMap  []int
	modOut []float64
	errOut []float64
}

// snapshotState tracks the two independent output cursors across a loop
// body's run.
type snapshotState struct {
	imC, ieC         *scheduleCursor
	modSlot, errSlot int
}

// newSnapshotState builds the cursors and, if due, emits the iteration-0
// ("initial estimate") snapshots from the starting iterate buf. e0 is the
// infeasibility of the initial estimate, Sum(s_abs[i]^2) over the nxReal
// real samples.
func newSnapshotState(ctx *apContext, buf []float64, e0 float64) *snapshotState {
	st := &snapshotState{
		imC: newScheduleCursor(ctx.par.Im),
		ieC: newScheduleCursor(ctx.par.Ie),
	}
	if st.imC.due(0) {
		writeModSnapshot(ctx.modOut, st.modSlot, ctx.par.ns, buf, ctx.ixMap, ctx.maxAbs, ctx.par.Cp)
		st.modSlot++
	}
	if st.ieC.due(0) {
		writeInitialErrSnapshot(ctx.errOut, st.errSlot, e0, float64(nxReal(ctx.par)))
		st.errSlot++
	}
	return st
}

// record writes the modulator/error snapshots due at iter, and, if
// converged has just become true on a singleton [Ni] schedule that hasn't
// already fired this iteration, synthesizes the final entry.
func (st *snapshotState) record(ctx *apContext, iter int, buf []float64, e, denom float64, converged bool) {
	emittedMod := st.imC.due(iter)
	if emittedMod {
		writeModSnapshot(ctx.modOut, st.modSlot, ctx.par.ns, buf, ctx.ixMap, ctx.maxAbs, ctx.par.Cp)
		st.modSlot++
	} else if converged && st.imC.singletonAt(ctx.par.Ni) {
		writeModSnapshot(ctx.modOut, st.modSlot, ctx.par.ns, buf, ctx.ixMap, ctx.maxAbs, ctx.par.Cp)
		st.modSlot++
	}

	emittedErr := st.ieC.due(iter)
	if emittedErr {
		writeErrSnapshot(ctx.errOut, st.errSlot, e, ctx.maxAbs, denom)
		st.errSlot++
	} else if converged && st.ieC.singletonAt(ctx.par.Ni) {
		writeErrSnapshot(ctx.errOut, st.errSlot, e, ctx.maxAbs, denom)
		st.errSlot++
	}
}

// etolScaled computes the termination threshold for the accumulated
// squared infeasibility E, or a sentinel that is never satisfied when
// Et<=0 ("run to Ni regardless of convergence").
func etolScaled(par *Params, maxAbs, denom float64) float64 {
	if par.Et <= 0 {
		return -1
	}
	scaled := par.Et / maxAbs
	return scaled * scaled * denom
}

// nxReal returns the true (unpadded) element count of the working grid.
func nxReal(par *Params) int {
	n := 1
	for d := 0; d < par.D; d++ {
		n *= par.Nx[d]
	}
	return n
}
