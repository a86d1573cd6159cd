// Package dsp exposes the spectral transforms and pitch estimation the
// analysis and refinement code depends on behind a capability interface,
// so the implementation is chosen once at configuration time rather than
// probed at call sites.
package dsp

import (
	"fmt"

	"github.com/RyanBlaney/voz-pura/algorithms/spectral"
)

// Backend is the DSP capability surface required by feature extraction
// and spectral refinement
type Backend interface {
	// Name identifies the backend in logs and reports
	Name() string

	// STFT computes a short-time Fourier transform with the given framing.
	// The trailing partial frame is dropped.
	STFT(signal []float64, windowSize, hopSize, sampleRate int) (*spectral.STFTResult, error)

	// ISTFT reconstructs a signal from magnitude and phase matrices
	ISTFT(magnitude, phase [][]float64, windowSize, hopSize int) ([]float64, error)

	// PitchEstimate returns a fundamental frequency estimate in Hz,
	// or 0 when no pitch is detectable
	PitchEstimate(signal []float64, sampleRate int) float64
}

// Kind selects a backend implementation
type Kind string

const (
	// KindSpectral is the primary FFT-based backend
	KindSpectral Kind = "spectral"

	// KindTimeDomain is a cruder fallback that avoids FFT entirely;
	// it is markedly slower and its pitch estimate is coarser
	KindTimeDomain Kind = "timedomain"
)

// New returns the backend for the given kind. Unknown kinds fail rather
// than silently degrade.
func New(kind Kind) (Backend, error) {
	switch kind {
	case KindSpectral, "":
		return NewSpectralBackend(), nil
	case KindTimeDomain:
		return NewTimeDomainBackend(), nil
	default:
		return nil, fmt.Errorf("unknown dsp backend: %q", kind)
	}
}

// Default returns the primary backend
func Default() Backend {
	return NewSpectralBackend()
}
