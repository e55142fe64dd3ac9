package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Normalization of the signal to |s|/max|s|, ported from the
 *		original library's f_apd_abs_scaled_max_abs.
 *
 *----------------------------------------------------------------*/

import "math"

// absScaledMaxAbs writes |in|/max|in| to out and returns max|in|. If every
// element of in is zero, out is left all-zero and the returned max is 0.
func absScaledMaxAbs(in []float64, out []float64) float64 {
	maxVal := 0.0
	for i, v := range in {
		av := math.Abs(v)
		out[i] = av
		if av > maxVal {
			maxVal = av
		}
	}

	if maxVal == 0 {
		return 0
	}

	for i := range out {
		out[i] /= maxVal
	}

	return maxVal
}
