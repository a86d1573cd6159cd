package harmonic

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/voz-pura/algorithms/spectral"
)

// HPSS performs harmonic/percussive source separation by median-filtering
// the STFT magnitude. Harmonic content is sustained along time, so a median
// filter across time frames enhances it; percussive and noise-like content
// is broadband, so a median filter across frequency bins enhances that.
//
// References:
//   - Fitzgerald, D. (2010). "Harmonic/Percussive Separation using Median
//     Filtering", DAFx-10
//   - Driedger, J., Müller, M., Disch, S. (2014). "Extending
//     Harmonic-Percussive Separation of Audio Signals", ISMIR
type HPSS struct {
	stft       *spectral.STFT
	windowSize int
	hopSize    int
	kernelSize int     // Median filter length (both axes)
	power      float64 // Soft mask exponent
}

// NewHPSS creates a separator with the standard analysis parameters
// (window 2048, hop 512, kernel 31, Wiener-style power-2 masks)
func NewHPSS() *HPSS {
	return &HPSS{
		stft:       spectral.NewSTFT(),
		windowSize: 2048,
		hopSize:    512,
		kernelSize: 31,
		power:      2.0,
	}
}

// Separate decomposes a signal into harmonic and percussive components.
// Both components are reconstructed with the original phase, so
// harmonic + percussive ≈ original within windowing error.
func (h *HPSS) Separate(signal []float64, sampleRate int) (harmonic, percussive []float64, err error) {
	result, err := h.stft.Compute(signal, h.windowSize, h.hopSize, sampleRate)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss analysis: %w", err)
	}

	harmEnhanced := medianFilterTime(result.Magnitude, h.kernelSize)
	percEnhanced := medianFilterFreq(result.Magnitude, h.kernelSize)

	harmMag := make([][]float64, result.TimeFrames)
	percMag := make([][]float64, result.TimeFrames)

	for t := 0; t < result.TimeFrames; t++ {
		harmMag[t] = make([]float64, result.FreqBins)
		percMag[t] = make([]float64, result.FreqBins)

		for f := 0; f < result.FreqBins; f++ {
			he := pow(harmEnhanced[t][f], h.power)
			pe := pow(percEnhanced[t][f], h.power)
			total := he + pe

			if total < 1e-10 {
				// No energy in this cell; split evenly
				harmMag[t][f] = result.Magnitude[t][f] * 0.5
				percMag[t][f] = result.Magnitude[t][f] * 0.5
				continue
			}

			harmMag[t][f] = result.Magnitude[t][f] * (he / total)
			percMag[t][f] = result.Magnitude[t][f] * (pe / total)
		}
	}

	harmonic, err = h.stft.Inverse(harmMag, result.Phase, h.windowSize, h.hopSize)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss harmonic resynthesis: %w", err)
	}

	percussive, err = h.stft.Inverse(percMag, result.Phase, h.windowSize, h.hopSize)
	if err != nil {
		return nil, nil, fmt.Errorf("hpss percussive resynthesis: %w", err)
	}

	return harmonic, percussive, nil
}

// EnergyRatio returns sum(harmonic²)/(sum(percussive²)+ε), a
// harmonic-to-noise proxy. Degenerate input yields 1.0.
func (h *HPSS) EnergyRatio(signal []float64, sampleRate int) float64 {
	harmonic, percussive, err := h.Separate(signal, sampleRate)
	if err != nil {
		return 1.0
	}

	harmonicEnergy := 0.0
	for _, v := range harmonic {
		harmonicEnergy += v * v
	}

	percussiveEnergy := 0.0
	for _, v := range percussive {
		percussiveEnergy += v * v
	}

	return harmonicEnergy / (percussiveEnergy + 1e-10)
}

// medianFilterTime median-filters each frequency bin across time frames
func medianFilterTime(magnitude [][]float64, kernelSize int) [][]float64 {
	numFrames := len(magnitude)
	if numFrames == 0 {
		return nil
	}
	numBins := len(magnitude[0])
	half := kernelSize / 2

	filtered := make([][]float64, numFrames)
	scratch := make([]float64, 0, kernelSize)

	for t := 0; t < numFrames; t++ {
		filtered[t] = make([]float64, numBins)

		lo := max(0, t-half)
		hi := min(numFrames-1, t+half)

		for f := 0; f < numBins; f++ {
			scratch = scratch[:0]
			for i := lo; i <= hi; i++ {
				scratch = append(scratch, magnitude[i][f])
			}
			filtered[t][f] = median(scratch)
		}
	}

	return filtered
}

// medianFilterFreq median-filters each time frame across frequency bins
func medianFilterFreq(magnitude [][]float64, kernelSize int) [][]float64 {
	numFrames := len(magnitude)
	if numFrames == 0 {
		return nil
	}
	numBins := len(magnitude[0])
	half := kernelSize / 2

	filtered := make([][]float64, numFrames)
	scratch := make([]float64, 0, kernelSize)

	for t := 0; t < numFrames; t++ {
		filtered[t] = make([]float64, numBins)

		for f := 0; f < numBins; f++ {
			lo := max(0, f-half)
			hi := min(numBins-1, f+half)

			scratch = scratch[:0]
			for i := lo; i <= hi; i++ {
				scratch = append(scratch, magnitude[t][i])
			}
			filtered[t][f] = median(scratch)
		}
	}

	return filtered
}

// median computes the median of values, mutating the slice order
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sort.Float64s(values)

	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2.0
}

// pow is a fast path for the common integer mask exponents
func pow(base, exp float64) float64 {
	if exp == 2.0 {
		return base * base
	}
	if exp == 1.0 {
		return base
	}

	result := base
	for i := 1; i < int(exp); i++ {
		result *= base
	}
	return result
}
