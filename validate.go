package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Structural validation of the parameter bundle and the input
 *		arrays, ported rule-for-rule from the original library's
 *		f_apd_input_validation.
 *
 *----------------------------------------------------------------*/

import "math"

func validateInput(signal []float64, par *Params, upperBound []float64, coords []float64) *Error {
	if par.Algorithm != Basic && par.Algorithm != Accelerated && par.Algorithm != Projected {
		return newError(KindBadAlgorithm, par.Algorithm.String())
	}

	if par.D < 1 || par.D > 3 {
		return newError(KindBadDimension, "")
	}

	coordMode := coords != nil

	for d := 0; d < par.D; d++ {
		if par.Fs[d] <= 0 || !isFinite(par.Fs[d]) {
			return newError(KindBadFs, "")
		}
	}

	for d := 0; d < par.D; d++ {
		if par.Fc[d] <= 0 || !isFinite(par.Fc[d]) {
			return newError(KindBadFc, "")
		}
	}

	for d := 0; d < par.D; d++ {
		if par.Fc[d]/par.Fs[d] > 0.5 {
			return newError(KindBadFc2, "")
		}
	}

	if !isFinite(par.Et) {
		return newError(KindBadEt, "")
	}

	if par.Ni <= 0 {
		return newError(KindBadNi, "")
	}

	if coordMode {
		if par.Ns[0] <= 1 {
			return newError(KindBadNs, "")
		}
	} else {
		for d := 0; d < par.D; d++ {
			if par.Ns[d] <= 1 {
				return newError(KindBadNs, "")
			}
		}
	}

	if coordMode {
		for d := 0; d < par.D; d++ {
			if par.Nr[d] <= 1 {
				return newError(KindBadNr, "")
			}
		}
	}

	if par.Cp < 1 || !isFinite(par.Cp) {
		return newError(KindBadCp, "")
	}

	// Br is a bool in this port, so it's always in {false,true}; nothing to
	// validate beyond it only being meaningful for Accelerated, which the
	// algorithms themselves simply ignore otherwise.

	if len(par.Ie) == 0 || par.Ie[0] < 0 {
		return newError(KindBadIeCount, "")
	}
	if len(par.Im) == 0 || par.Im[0] < 0 {
		return newError(KindBadImCount, "")
	}

	for i, v := range par.Ie {
		if v < 0 || (i > 0 && par.Ie[i-1] >= v) {
			return newError(KindBadIeOrder, "")
		}
	}
	for i, v := range par.Im {
		if v < 0 || (i > 0 && par.Im[i-1] >= v) {
			return newError(KindBadImOrder, "")
		}
	}

	var ns int
	if coordMode {
		ns = par.Ns[0]
	} else {
		ns = 1
		for d := 0; d < par.D; d++ {
			ns *= par.Ns[d]
		}
	}

	for i := 0; i < ns; i++ {
		if !isFinite(signal[i]) {
			return newError(KindBadSignal, "")
		}
	}

	if upperBound != nil {
		for i := 0; i < ns; i++ {
			if !isFinite(upperBound[i]) || upperBound[i] < math.Abs(signal[i]) {
				return newError(KindBadUpperBound, "")
			}
		}
	}

	if coordMode {
		for i := 0; i < ns*par.D; i++ {
			if !isFinite(coords[i]) {
				return newError(KindBadCoords, "")
			}
		}
	}

	return nil
}
