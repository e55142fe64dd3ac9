package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Top-level entry point, ported from the original library's
 *		f_apd_demodulation: validates, optionally compresses and
 *		interpolates, remaps into the padded DFT layout, commits a
 *		DFT plan, and dispatches to the selected AP loop body.
 *
 *----------------------------------------------------------------*/

import "math"

// Demodulate recovers the modulator envelope of signal under par, writing
// modulator and infeasibility-error snapshots to modOut and errOut at the
// iterations named by par.Im and par.Ie respectively, and returns the
// number of AP iterations actually performed.
//
// upperBound and coords are optional (nil means absent). modOut must have
// room for len(par.Im)*ns samples and errOut for len(par.Ie), where ns is
// the total original sample count (the product of par.Ns[0:par.D], or
// par.Ns[0] when coords is supplied).
func Demodulate(signal []float64, par *Params, upperBound []float64, coords []float64, modOut []float64, errOut []float64) (int, error) {
	if verr := validateInput(signal, par, upperBound, coords); verr != nil {
		return 0, handleTerminal(verr)
	}

	coordMode := coords != nil

	var ns int
	if coordMode {
		ns = par.Ns[0]
	} else {
		ns = 1
		for d := 0; d < par.D; d++ {
			ns *= par.Ns[d]
		}
	}
	par.ns = ns

	var Nx [3]int
	if coordMode {
		Nx = par.Nr
	} else {
		Nx = par.Ns
	}
	par.Nx = Nx

	// Private copies: the caller's signal/upperBound are never mutated.
	sPriv := make([]float64, ns)
	copy(sPriv, signal[:ns])
	var ubPriv []float64
	if upperBound != nil {
		ubPriv = make([]float64, ns)
		copy(ubPriv, upperBound[:ns])
	}

	compress(sPriv, 1/par.Cp)
	if ubPriv != nil {
		compress(ubPriv, 1/par.Cp)
	}

	nNat := 1
	for d := 0; d < par.D; d++ {
		nNat *= Nx[d]
	}

	var sNat, ubNat []float64
	ixNat := make([]int, ns)

	if coordMode {
		sNat = make([]float64, nNat)
		if ubPriv != nil {
			ubNat = make([]float64, nNat)
		}
		interpolate(sPriv, par, ubPriv, coords, sNat, ubNat, ixNat)
	} else {
		sNat = sPriv
		ubNat = ubPriv
		for i := range ixNat {
			ixNat[i] = i
		}
	}

	nxPadVal := nxPad(par.D, Nx)
	sPacked := make([]float64, nxPadVal)
	ubPacked := make([]float64, nxPadVal)
	for i := range ubPacked {
		ubPacked[i] = math.Inf(1)
	}

	remapToLayout(sNat, ubNat, ixNat, par.D, Nx, sPacked, ubPacked)

	sAbsPacked := make([]float64, nxPadVal)
	maxAbs := absScaledMaxAbs(sPacked, sAbsPacked)
	if maxAbs > 0 {
		for i := range ubPacked {
			ubPacked[i] /= maxAbs
		}
	}

	var iL, iR [3]int
	for d := 0; d < par.D; d++ {
		iL[d] = 1 + int(math.Ceil(par.Fc[d]/(par.Fs[d]/float64(Nx[d]))))
		iR[d] = Nx[d] - iL[d]
	}

	plan, derr := newDFTPlan(par.D, Nx)
	if derr != nil {
		return 0, handleTerminal(derr)
	}

	ctx := &apContext{
		plan:   plan,
		sAbs:   sAbsPacked,
		ub:     ubPacked,
		iL:     iL,
		iR:     iR,
		par:    par,
		maxAbs: maxAbs,
		ixMap:  ixNat,
		modOut: modOut,
		errOut: errOut,
	}

	var iter int
	switch par.Algorithm {
	case Basic:
		iter = runBasic(ctx)
	case Accelerated:
		iter = runAccelerated(ctx)
	case Projected:
		iter = runProjected(ctx)
	}

	return iter, nil
}
