package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     AP-Basic loop body, ported from the original library's
 *		f_apd_basic: band-limit projection followed by a pointwise
 *		clamp to [s_abs, Ub], with no acceleration.
 *
 *----------------------------------------------------------------*/

// runBasic runs the Basic AP loop to completion and returns the number of
// iterations actually performed.
func runBasic(ctx *apContext) int {
	s := append([]float64(nil), ctx.sAbs...)

	denom := float64(nxReal(ctx.par))
	etol := etolScaled(ctx.par, ctx.maxAbs, denom)

	e := 0.0
	for _, v := range ctx.sAbs {
		e += v * v
	}

	st := newSnapshotState(ctx, s, e)

	iter := 0
	for iter < ctx.par.Ni && !hasConverged(ctx.par, e, etol) {
		iter++
		ctx.plan.projectLowpass(s, ctx.iL, ctx.iR)

		e = 0
		for i := range s {
			old := s[i]
			s[i] = clamp(s[i], ctx.sAbs[i], ctx.ub[i])
			diff := s[i] - old
			e += diff * diff
		}

		converged := hasConverged(ctx.par, e, etol)
		st.record(ctx, iter, s, e, denom, converged)
	}

	return iter
}
