package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     AP-Projected loop body, ported from the original library's
 *		f_apd_projected: Dykstra's projection with an auxiliary
 *		correction term c that removes bias between the two
 *		non-commuting sets.
 *
 *----------------------------------------------------------------*/

// runProjected runs the Projected AP loop to completion and returns the
// number of iterations actually performed.
func runProjected(ctx *apContext) int {
	s := append([]float64(nil), ctx.sAbs...)
	a := append([]float64(nil), ctx.sAbs...)
	c := append([]float64(nil), ctx.sAbs...)

	// Projected's per-cell residual has two terms, so its infeasibility sum
	// runs over twice as many terms as Basic/Accelerated's for the same
	// grid; both the termination threshold and the reported error scale by
	// 2*nxReal accordingly (see the tolerance-scaling design note). The
	// initial-estimate readout is the exception: like Basic/Accelerated, it
	// reports Sum(s_abs^2) over plain nxReal, before any projection has
	// introduced a second residual term.
	denom := 2 * float64(nxReal(ctx.par))
	etol := etolScaled(ctx.par, ctx.maxAbs, denom)

	e0 := 0.0
	for _, v := range ctx.sAbs {
		e0 += v * v
	}

	st := newSnapshotState(ctx, s, e0)

	iter := 0
	e := e0
	for iter < ctx.par.Ni && !hasConverged(ctx.par, e, etol) {
		iter++
		ctx.plan.projectLowpass(a, ctx.iL, ctx.iR)

		e = 0
		for i := range s {
			aux := s[i] - a[i]
			s[i] = clamp(a[i]-c[i], ctx.sAbs[i], ctx.ub[i])
			aux2 := s[i] - a[i]
			c[i] += aux2
			a[i] = s[i]
			e += aux*aux + aux2*aux2
		}

		converged := hasConverged(ctx.par, e, etol)
		st.record(ctx, iter, s, e, denom, converged)
	}

	return iter
}
