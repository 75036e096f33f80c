// Package analysis provides frequency-domain views of energy series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data in place of a
// copy, using an iterative radix-2 Cooley-Tukey. The length must be a
// power of two; pad with NextPow2 first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		panic("fft requires power of 2 length")
	}

	buf := make([]complex128, n)
	for i, v := range data {
		buf[i] = complex(v, 0)
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < size/2; k++ {
				even := buf[start+k]
				odd := buf[start+k+size/2] * w
				buf[start+k] = even + odd
				buf[start+k+size/2] = even - odd
				w *= step
			}
		}
	}

	return buf
}

// PowerSpectrum returns the magnitude of the first half of the
// transform, one bin per frequency up to Nyquist.
func PowerSpectrum(data []float64) []float64 {
	out := FFT(data)
	ps := make([]float64, len(out)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(out[i])
	}
	return ps
}

// NextPow2 returns the smallest power of two >= n (minimum 1).
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Pad returns data zero-padded to the next power-of-two length.
func Pad(data []float64) []float64 {
	n := NextPow2(len(data))
	if n == len(data) {
		return data
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}
