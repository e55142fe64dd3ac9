package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     AP-Accelerated loop body, ported from the original
 *		library's f_apd_accelerated: Basic plus a Polyak-momentum
 *		factor lambda carried between iterations, with an optional
 *		early break when lambda drops below 1.
 *
 *----------------------------------------------------------------*/

// runAccelerated runs the Accelerated AP loop to completion and returns the
// number of iterations actually performed.
func runAccelerated(ctx *apContext) int {
	n := len(ctx.sAbs)
	a := make([]float64, n)
	b := append([]float64(nil), ctx.sAbs...)
	s := append([]float64(nil), ctx.sAbs...)

	nom := 0.0
	for _, v := range ctx.sAbs {
		nom += v * v
	}

	denom := float64(nxReal(ctx.par))
	etol := etolScaled(ctx.par, ctx.maxAbs, denom)
	st := newSnapshotState(ctx, s, nom)

	iter := 0
	e := nom
	for iter < ctx.par.Ni && !hasConverged(ctx.par, e, etol) {
		// The original increments the attempt counter before testing
		// whether momentum overshot, so a discarded (Br) attempt still
		// counts toward the returned iteration total.
		iter++
		ctx.plan.projectLowpass(b, ctx.iL, ctx.iR)

		bNormSq := 0.0
		for _, v := range b {
			bNormSq += v * v
		}

		lambda := 1.0
		if bNormSq != 0 {
			lambda = nom / bNormSq
		}

		if ctx.par.Br && lambda < 1 {
			// The attempted iteration is discarded; s and e from the last
			// successful iteration are kept as the result.
			break
		}

		nomNext := 0.0
		for i := range a {
			a[i] += lambda * b[i]
			s[i] = clamp(a[i], ctx.sAbs[i], ctx.ub[i])
			b[i] = s[i] - a[i]
			nomNext += b[i] * b[i]
		}
		nom = nomNext
		e = nom

		converged := hasConverged(ctx.par, e, etol)
		st.record(ctx, iter, s, e, denom, converged)
	}

	return iter
}
