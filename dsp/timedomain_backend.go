package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/voz-pura/algorithms/spectral"
	"github.com/RyanBlaney/voz-pura/algorithms/windowing"
)

// TimeDomainBackend is the documented cruder fallback. Its transforms are
// direct O(n²) DFTs and its pitch estimate counts zero crossings, so it
// trades accuracy and speed for having no FFT dependency at all.
type TimeDomainBackend struct{}

// NewTimeDomainBackend creates the fallback backend
func NewTimeDomainBackend() *TimeDomainBackend {
	return &TimeDomainBackend{}
}

func (b *TimeDomainBackend) Name() string {
	return string(KindTimeDomain)
}

func (b *TimeDomainBackend) STFT(signal []float64, windowSize, hopSize, sampleRate int) (*spectral.STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window size and hop size must be positive")
	}
	if len(signal) < windowSize {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	freqBins := windowSize/2 + 1

	window := windowing.NewHann(windowSize, false).Coefficients()

	magnitude := make([][]float64, numFrames)
	phase := make([][]float64, numFrames)

	frame := make([]float64, windowSize)

	for t := 0; t < numFrames; t++ {
		magnitude[t] = make([]float64, freqBins)
		phase[t] = make([]float64, freqBins)

		offset := t * hopSize
		for i := 0; i < windowSize; i++ {
			frame[i] = signal[offset+i] * window[i]
		}

		for k := 0; k < freqBins; k++ {
			sum := complex(0, 0)
			for n := 0; n < windowSize; n++ {
				angle := -2.0 * math.Pi * float64(k) * float64(n) / float64(windowSize)
				sum += complex(frame[n]*math.Cos(angle), frame[n]*math.Sin(angle))
			}
			magnitude[t][k] = cmplx.Abs(sum)
			phase[t][k] = cmplx.Phase(sum)
		}
	}

	return &spectral.STFTResult{
		Magnitude:      magnitude,
		Phase:          phase,
		TimeFrames:     numFrames,
		FreqBins:       freqBins,
		SampleRate:     sampleRate,
		WindowSize:     windowSize,
		HopSize:        hopSize,
		FreqResolution: float64(sampleRate) / float64(windowSize),
	}, nil
}

func (b *TimeDomainBackend) ISTFT(magnitude, phase [][]float64, windowSize, hopSize int) ([]float64, error) {
	if len(magnitude) == 0 || len(magnitude) != len(phase) {
		return nil, fmt.Errorf("magnitude and phase must be non-empty and the same shape")
	}
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window size and hop size must be positive")
	}

	freqBins := windowSize/2 + 1
	numFrames := len(magnitude)
	outputLen := (numFrames-1)*hopSize + windowSize

	window := windowing.NewHann(windowSize, false).Coefficients()

	output := make([]float64, outputLen)
	windowSum := make([]float64, outputLen)

	spectrum := make([]complex128, windowSize)
	frame := make([]float64, windowSize)

	for t := 0; t < numFrames; t++ {
		if len(magnitude[t]) != freqBins || len(phase[t]) != freqBins {
			return nil, fmt.Errorf("frame %d has %d bins, want %d", t, len(magnitude[t]), freqBins)
		}

		for k := 0; k < freqBins; k++ {
			spectrum[k] = cmplx.Rect(magnitude[t][k], phase[t][k])
		}
		for k := freqBins; k < windowSize; k++ {
			spectrum[k] = cmplx.Conj(spectrum[windowSize-k])
		}

		// Direct inverse DFT, real part
		for n := 0; n < windowSize; n++ {
			sum := 0.0
			for k := 0; k < windowSize; k++ {
				angle := 2.0 * math.Pi * float64(k) * float64(n) / float64(windowSize)
				sum += real(spectrum[k])*math.Cos(angle) - imag(spectrum[k])*math.Sin(angle)
			}
			frame[n] = sum / float64(windowSize)
		}

		offset := t * hopSize
		for i := 0; i < windowSize; i++ {
			output[offset+i] += frame[i] * window[i]
			windowSum[offset+i] += window[i] * window[i]
		}
	}

	for i := range output {
		if windowSum[i] > 1e-10 {
			output[i] /= windowSum[i]
		}
	}

	return output, nil
}

// PitchEstimate approximates the fundamental as half the zero-crossing
// rate. Reasonable for sustained voiced sounds, poor for anything else.
func (b *TimeDomainBackend) PitchEstimate(signal []float64, sampleRate int) float64 {
	if len(signal) < 2 || sampleRate <= 0 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(signal); i++ {
		if (signal[i-1] >= 0 && signal[i] < 0) || (signal[i-1] < 0 && signal[i] >= 0) {
			crossings++
		}
	}

	duration := float64(len(signal)) / float64(sampleRate)
	return float64(crossings) / (2.0 * duration)
}
