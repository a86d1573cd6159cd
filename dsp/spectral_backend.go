package dsp

import (
	"github.com/RyanBlaney/voz-pura/algorithms/spectral"
)

// SpectralBackend is the primary FFT-based implementation
type SpectralBackend struct {
	stft *spectral.STFT
}

// NewSpectralBackend creates the primary backend
func NewSpectralBackend() *SpectralBackend {
	return &SpectralBackend{
		stft: spectral.NewSTFT(),
	}
}

func (b *SpectralBackend) Name() string {
	return string(KindSpectral)
}

func (b *SpectralBackend) STFT(signal []float64, windowSize, hopSize, sampleRate int) (*spectral.STFTResult, error) {
	return b.stft.Compute(signal, windowSize, hopSize, sampleRate)
}

func (b *SpectralBackend) ISTFT(magnitude, phase [][]float64, windowSize, hopSize int) ([]float64, error) {
	return b.stft.Inverse(magnitude, phase, windowSize, hopSize)
}

// PitchEstimate detects the fundamental via autocorrelation peak picking
// over the speech range (60-500 Hz)
func (b *SpectralBackend) PitchEstimate(signal []float64, sampleRate int) float64 {
	if len(signal) == 0 || sampleRate <= 0 {
		return 0.0
	}

	minLag := sampleRate / 500
	maxLag := sampleRate / 60

	if maxLag >= len(signal) {
		maxLag = len(signal) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0.0
	}

	energy := 0.0
	for _, v := range signal {
		energy += v * v
	}
	if energy < 1e-10 {
		return 0.0
	}

	bestLag := 0
	bestCorr := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		corr := 0.0
		for i := 0; i < len(signal)-lag; i++ {
			corr += signal[i] * signal[i+lag]
		}
		corr /= energy

		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	// Weak periodicity means unvoiced or noise
	if bestLag == 0 || bestCorr < 0.3 {
		return 0.0
	}

	return float64(sampleRate) / float64(bestLag)
}
