package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Carrier reconstruction helper, supplementing the core
 *		engine per the original example drivers' diagnostic use of
 *		signal/modulator. Not called by Demodulate itself.
 *
 *----------------------------------------------------------------*/

// Carrier reconstructs the wideband carrier as signal[i]/modulator[i] for
// every index. The result is +/-Inf where modulator[i] is zero and NaN
// where both are zero, matching plain floating-point division semantics.
func Carrier(signal, modulator []float64) []float64 {
	out := make([]float64, len(signal))
	for i, s := range signal {
		out[i] = s / modulator[i]
	}
	return out
}
