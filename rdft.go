package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     RealDFT facade: an in-place real -> CCE-packed-complex ->
 *		real DFT over a 1-, 2-, or 3-dim grid, plus the band-limit
 *		projection used once per AP iteration. Ported from the
 *		original library's f_apd_mkl_dft_init/f_apd_mkl_dft_PMw,
 *		which drove Intel's MKL DFTI descriptor directly; this
 *		façade gets the same CCE-packed in-place behavior out of
 *		gonum.org/v1/gonum/dsp/fourier's per-axis real and complex
 *		FFTs via a row-column decomposition.
 *
 *----------------------------------------------------------------*/

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// dftPlan is the committed descriptor for one D-dim grid shape. A single
// plan is created per Demodulate call and reused across every iteration's
// projectLowpass.
type dftPlan struct {
	D      int
	Nx     [3]int
	rowLen int // packed reals per row along the last axis
	total  int // N0*N1*...*Nx[D-1], the backward-transform scale divisor

	real *fourier.FFT      // last-axis real<->complex transform
	cplx [2]*fourier.CmplxFFT // transforms for the other (complex) axes, indexed [0]=axis0, [1]=axis1 (D==3 only)
}

func newDFTPlan(D int, Nx [3]int) (*dftPlan, *Error) {
	if D < 1 || D > 3 {
		return nil, newError(KindDftCreate, "dimension out of range")
	}

	last := Nx[D-1]
	total := 1
	for d := 0; d < D; d++ {
		total *= Nx[d]
	}
	p := &dftPlan{
		D:      D,
		Nx:     Nx,
		rowLen: (last/2 + 1) * 2,
		total:  total,
		real:   fourier.NewFFT(last),
	}

	switch D {
	case 2:
		p.cplx[0] = fourier.NewCmplxFFT(Nx[0])
	case 3:
		p.cplx[0] = fourier.NewCmplxFFT(Nx[0])
		p.cplx[1] = fourier.NewCmplxFFT(Nx[1])
	}

	return p, nil
}

// forward transforms buf (real, CCE-packed layout) in place from the
// spatial domain to the frequency domain.
func (p *dftPlan) forward(buf []float64) {
	strd0, strd1, last := p.axisStrides()

	// Last axis: real -> complex, one row per (i0,i1) combination.
	scratch := make([]complex128, last/2+1)
	for i0 := 0; i0 < p.n0(); i0++ {
		for i1 := 0; i1 < p.n1(); i1++ {
			off := i0*strd0 + i1*strd1
			row := buf[off : off+last]
			coef := p.real.Coefficients(scratch, row)
			packComplexRow(buf[off:off+p.rowLen], coef)
		}
	}

	if p.D == 1 {
		return
	}

	// Axis D-2 (the innermost remaining complex axis).
	p.transformAxis(buf, p.D-2, true)

	if p.D == 3 {
		// Axis 0 (outermost).
		p.transformAxis(buf, 0, true)
	}
}

// backward transforms buf in place from the frequency domain back to the
// spatial domain, scaled by 1/(N0*N1*...*Nx[D-1]) so that
// backward(forward(x)) == x up to floating rounding.
func (p *dftPlan) backward(buf []float64) {
	if p.D == 3 {
		p.transformAxis(buf, 0, false)
	}
	if p.D >= 2 {
		p.transformAxis(buf, p.D-2, false)
	}

	strd0, strd1, last := p.axisStrides()
	scratch := make([]complex128, last/2+1)
	out := make([]float64, last)
	for i0 := 0; i0 < p.n0(); i0++ {
		for i1 := 0; i1 < p.n1(); i1++ {
			off := i0*strd0 + i1*strd1
			coef := unpackComplexRow(scratch, buf[off:off+p.rowLen])
			seq := p.real.Sequence(out, coef)
			copy(buf[off:off+last], seq)
		}
	}

	// gonum's Sequence (real and complex) returns the unnormalized inverse,
	// i.e. Sequence(Coefficients(x)) == N*x per axis transformed. Undo the
	// combined N0*N1*...*Nx[D-1] scale picked up across all D axes so that
	// backward(forward(x)) == x, matching DFTI_BACKWARD_SCALE = 1.0/n in the
	// original.
	scale := 1 / float64(p.total)
	for i := range buf {
		buf[i] *= scale
	}
}

// projectLowpass implements the projection onto Mw: forward transform,
// zero every frequency coefficient outside the axis-aligned low-pass box
// [0,iL)U(iR,Nx) per axis (last axis handled via the packed real-slot kill
// zone), then backward transform.
func (p *dftPlan) projectLowpass(buf []float64, iL, iR [3]int) {
	p.forward(buf)

	strd0, strd1, _ := p.axisStrides()
	lastKill := 2 * iL[p.D-1]

	switch p.D {
	case 1:
		for j := lastKill; j < p.rowLen; j++ {
			buf[j] = 0
		}

	case 2:
		for j := lastKill; j < p.rowLen; j++ {
			for i0 := 0; i0 < p.Nx[0]; i0++ {
				buf[i0*strd0+j] = 0
			}
		}
		for j := 0; j < lastKill; j++ {
			for i0 := iL[0]; i0 <= iR[0]; i0++ {
				buf[i0*strd0+j] = 0
			}
		}

	case 3:
		for j := lastKill; j < p.rowLen; j++ {
			for i1 := 0; i1 < p.Nx[1]; i1++ {
				for i0 := 0; i0 < p.Nx[0]; i0++ {
					buf[i0*strd0+i1*strd1+j] = 0
				}
			}
		}
		for j := 0; j < lastKill; j++ {
			for i1 := iL[1]; i1 <= iR[1]; i1++ {
				for i0 := 0; i0 < p.Nx[0]; i0++ {
					buf[i0*strd0+i1*strd1+j] = 0
				}
			}
		}
		for j := 0; j < lastKill; j++ {
			for i0 := iL[0]; i0 <= iR[0]; i0++ {
				for i1 := 0; i1 < iL[1]; i1++ {
					buf[i0*strd0+i1*strd1+j] = 0
				}
				for i1 := iR[1] + 1; i1 < p.Nx[1]; i1++ {
					buf[i0*strd0+i1*strd1+j] = 0
				}
			}
		}
	}

	p.backward(buf)
}

// axisStrides returns the real-element strides of axis0 and axis1 (when
// present) and the last axis extent, using the same packed layout as
// remapToLayout/strides.
func (p *dftPlan) axisStrides() (strd0, strd1, last int) {
	_, strd := strides(p.D, p.Nx)
	last = p.Nx[p.D-1]
	switch p.D {
	case 1:
		return 0, 0, last
	case 2:
		return strd[0], 0, last
	default:
		return strd[0], strd[1], last
	}
}

func (p *dftPlan) n0() int {
	if p.D == 1 {
		return 1
	}
	return p.Nx[0]
}

func (p *dftPlan) n1() int {
	if p.D < 3 {
		return 1
	}
	return p.Nx[1]
}

// transformAxis runs the complex FFT/iFFT for axis (0 or D-2) across every
// line of the grid parallel to it, reading and writing complex values
// packed 2-reals-per-bin in buf.
func (p *dftPlan) transformAxis(buf []float64, axis int, fwd bool) {
	strd0, strd1, last := p.axisStrides()
	nLastC := last/2 + 1

	var plan *fourier.CmplxFFT
	var n, axisStride, outerExtent, outerStride int

	switch {
	case p.D == 2 && axis == 0:
		plan = p.cplx[0]
		n = p.Nx[0]
		axisStride = strd0
		outerExtent = 1
		outerStride = 0
	case p.D == 3 && axis == p.D-2: // axis 1
		plan = p.cplx[1]
		n = p.Nx[1]
		axisStride = strd1
		outerExtent = p.Nx[0]
		outerStride = strd0
	case p.D == 3 && axis == 0:
		plan = p.cplx[0]
		n = p.Nx[0]
		axisStride = strd0
		outerExtent = p.Nx[1]
		outerStride = strd1
	default:
		return
	}

	in := make([]complex128, n)
	out := make([]complex128, n)

	for o := 0; o < outerExtent; o++ {
		for k := 0; k < nLastC; k++ {
			base := o*outerStride + 2*k
			for i := 0; i < n; i++ {
				off := base + i*axisStride
				in[i] = complex(buf[off], buf[off+1])
			}

			var res []complex128
			if fwd {
				res = plan.Coefficients(out, in)
			} else {
				res = plan.Sequence(out, in)
			}

			for i := 0; i < n; i++ {
				off := base + i*axisStride
				buf[off] = real(res[i])
				buf[off+1] = imag(res[i])
			}
		}
	}
}

// packComplexRow writes a half-spectrum of complex coefficients (length
// n/2+1) into dst's packed real-slot layout (2 reals per bin).
func packComplexRow(dst []float64, coef []complex128) {
	for k, c := range coef {
		dst[2*k] = real(c)
		dst[2*k+1] = imag(c)
	}
}

// unpackComplexRow reads a packed real-slot row back into a complex
// half-spectrum, returning the (possibly reallocated) scratch slice.
func unpackComplexRow(scratch []complex128, src []float64) []complex128 {
	for k := range scratch {
		scratch[k] = complex(src[2*k], src[2*k+1])
	}
	return scratch
}
