package spectral

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/RyanBlaney/voz-pura/algorithms/windowing"
)

// STFT provides Short-Time Fourier Transform analysis and resynthesis
type STFT struct {
	fft *FFT
}

// STFTResult holds the result of STFT analysis
type STFTResult struct {
	Magnitude      [][]float64 `json:"magnitude"`       // Time x Frequency magnitude matrix
	Phase          [][]float64 `json:"phase"`           // Time x Frequency phase matrix
	TimeFrames     int         `json:"time_frames"`     // Number of time frames
	FreqBins       int         `json:"freq_bins"`       // Number of frequency bins
	SampleRate     int         `json:"sample_rate"`     // Sample rate
	WindowSize     int         `json:"window_size"`     // FFT window size
	HopSize        int         `json:"hop_size"`        // Hop size between frames
	FreqResolution float64     `json:"freq_resolution"` // Frequency resolution (Hz/bin)
}

// Window interface for windowing functions
type Window interface {
	ApplyInPlace(signal []float64) error
	Coefficients() []float64
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft: NewFFT(),
	}
}

// Compute computes the STFT with a periodic Hann window.
// Frames start at multiples of hopSize; the trailing partial frame is
// dropped, so TimeFrames = (len(signal)-windowSize)/hopSize + 1.
func (s *STFT) Compute(signal []float64, windowSize, hopSize, sampleRate int) (*STFTResult, error) {
	return s.ComputeWithWindow(signal, windowSize, hopSize, sampleRate, windowing.NewHann(windowSize, false))
}

// ComputeWithWindow computes the STFT with parallel frame processing and a
// caller-supplied window
func (s *STFT) ComputeWithWindow(signal []float64, windowSize, hopSize, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive")
	}

	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	if len(signal) < windowSize {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1

	// Positive frequencies only
	freqBins := windowSize/2 + 1

	magnitude := make([][]float64, numFrames)
	phase := make([][]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		magnitude[i] = make([]float64, freqBins)
		phase[i] = make([]float64, freqBins)
	}

	numWorkers := s.optimalWorkerCount(numFrames)

	jobs := make(chan int, numFrames)

	// First windowing failure wins; a frame that cannot be windowed must
	// fail the whole transform, not produce a silent frame
	var (
		errOnce  sync.Once
		frameErr error
	)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Frame buffer reused by this worker
			frameBuffer := make([]float64, windowSize)

			for frameIdx := range jobs {
				startIdx := frameIdx * hopSize
				copy(frameBuffer, signal[startIdx:startIdx+windowSize])

				if window != nil {
					if err := window.ApplyInPlace(frameBuffer); err != nil {
						errOnce.Do(func() {
							frameErr = fmt.Errorf("windowing frame %d: %w", frameIdx, err)
						})
						continue
					}
				}

				fftResult := s.fft.Compute(frameBuffer)

				for i := 0; i < freqBins; i++ {
					magnitude[frameIdx][i] = cmplx.Abs(fftResult[i])
					phase[frameIdx][i] = cmplx.Phase(fftResult[i])
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
			jobs <- frameIdx
		}
	}()

	wg.Wait()

	if frameErr != nil {
		return nil, frameErr
	}

	return &STFTResult{
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

// Inverse reconstructs a time-domain signal from magnitude and phase
// matrices via Hann-weighted overlap-add. Output length is
// (timeFrames-1)*hopSize + windowSize.
func (s *STFT) Inverse(magnitude, phase [][]float64, windowSize, hopSize int) ([]float64, error) {
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

	for t := 0; t < numFrames; t++ {
		if len(magnitude[t]) != freqBins || len(phase[t]) != freqBins {
			return nil, fmt.Errorf("frame %d has %d bins, want %d", t, len(magnitude[t]), freqBins)
		}

		// Rebuild the full spectrum from the positive half (hermitian symmetry)
		for i := 0; i < freqBins; i++ {
			spectrum[i] = cmplx.Rect(magnitude[t][i], phase[t][i])
		}
		for i := freqBins; i < windowSize; i++ {
			spectrum[i] = cmplx.Conj(spectrum[windowSize-i])
		}

		frame := s.fft.ComputeInverseReal(spectrum)

		offset := t * hopSize
		for i := 0; i < windowSize; i++ {
			output[offset+i] += frame[i] * window[i]
			windowSum[offset+i] += window[i] * window[i]
		}
	}

	// Normalize by the accumulated synthesis window energy
	for i := range output {
		if windowSum[i] > 1e-10 {
			output[i] /= windowSum[i]
		}
	}

	return output, nil
}

// optimalWorkerCount sizes the worker pool to the workload
func (s *STFT) optimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}

	if numFrames < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}

// FrequencyBins returns the center frequency of each bin for a spectrum
// with numBins positive-frequency bins
func FrequencyBins(numBins, sampleRate int) []float64 {
	bins := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		bins[i] = float64(i) * float64(sampleRate) / float64((numBins-1)*2)
	}
	return bins
}
