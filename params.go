package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Demodulation parameter bundle shared by every AP variant.
 *
 *----------------------------------------------------------------*/

// Algorithm selects which alternating-projection variant Demodulate runs.
type Algorithm int

const (
	// Basic projects the iterate between the band-limited subspace and the
	// pointwise [|s|, Ub] half-space, with no acceleration.
	Basic Algorithm = iota
	// Accelerated applies Polyak-momentum acceleration (lambda) on top of
	// Basic, optionally breaking early when lambda drops below 1.
	Accelerated
	// Projected runs Dykstra's projection with an auxiliary correction that
	// removes bias between the two non-commuting sets.
	Projected
)

func (a Algorithm) String() string {
	switch a {
	case Basic:
		return "Basic"
	case Accelerated:
		return "Accelerated"
	case Projected:
		return "Projected"
	default:
		return "unknown"
	}
}

// Params bundles every tunable of a single Demodulate call. Fields marked
// "engine-filled" are written by Demodulate itself and must not be set by
// the caller.
type Params struct {
	Algorithm Algorithm

	// D is the grid rank, one of {1,2,3}.
	D int

	// Fs and Fc are the per-axis sampling and modulator-cutoff frequencies;
	// only the first D entries are consulted.
	Fs [3]float64
	Fc [3]float64

	// Et is the infeasibility tolerance in original signal units. Et<=0
	// means "run to Ni regardless of convergence".
	Et float64

	// Ni is the maximum number of AP iterations.
	Ni int

	// Ns holds the sample count per axis of the supplied signal (uniform
	// mode), or the total sample count in Ns[0] (coordinate mode).
	Ns [3]int

	// Nr holds the refined uniform-grid size per axis; only consulted when
	// coordinates are supplied.
	Nr [3]int

	// Cp is the compression exponent; 1 means "no compression".
	Cp float64

	// Br requests early termination of Accelerated when lambda < 1.
	Br bool

	// Im and Ie are strictly increasing non-negative iteration indices at
	// which to record the modulator and the infeasibility error,
	// respectively. 0 means "the initial estimate, before any iteration".
	Im []int
	Ie []int

	// ns is the engine-filled total original sample count.
	ns int
	// Nx is the engine-filled working grid size: Nr if coordinates were
	// supplied, else Ns.
	Nx [3]int
}
