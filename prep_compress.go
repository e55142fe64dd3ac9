package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Power-law compression/decompression applied in place,
 *		ported from the original library's f_apd_compression.
 *
 *----------------------------------------------------------------*/

import "math"

// compress applies x <- sign(x)*|x|^p in place. With p=1 it is a no-op
// (aside from float rounding); Demodulate calls it with p=1/Cp before
// solving, and writeModSnapshot undoes it on every output snapshot by
// applying signedPow with p=Cp.
func compress(s []float64, p float64) {
	for i, v := range s {
		s[i] = signedPow(v, p)
	}
}

// signedPow returns sign(x)*|x|^p, the elementary operation compress and
// the modulator snapshot decompression step both apply.
func signedPow(x, p float64) float64 {
	switch {
	case x > 0:
		return math.Pow(x, p)
	case x < 0:
		return -math.Pow(-x, p)
	default:
		return 0
	}
}
