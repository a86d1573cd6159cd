// Package quality derives per-file quality metrics and a composite 0-100
// score from audio buffers, and ranks/filters the resulting records across
// a corpus.
package quality

import (
	"github.com/RyanBlaney/voz-pura/algorithms/harmonic"
	"github.com/RyanBlaney/voz-pura/algorithms/spectral"
	"github.com/RyanBlaney/voz-pura/algorithms/temporal"
	"github.com/RyanBlaney/voz-pura/audio"
	"github.com/RyanBlaney/voz-pura/dsp"
)

// Standard analysis framing shared by feature extraction, scoring, and
// the refinement stages
const (
	DefaultFrameLength = 2048
	DefaultHopLength   = 512

	// DefaultRolloffThreshold is the spectral rolloff energy fraction
	DefaultRolloffThreshold = 0.85
)

// FeatureExtractor computes per-frame and aggregate features from an audio
// buffer. All methods are pure: no file I/O, no retained state between
// calls beyond cached frequency bins.
type FeatureExtractor struct {
	backend     dsp.Backend
	frameLength int
	hopLength   int
}

// SpectralFeatures holds the per-frame spectral descriptor series computed
// from a single STFT pass
type SpectralFeatures struct {
	Centroid  []float64 `json:"centroid"`  // Brightness proxy, Hz
	Rolloff   []float64 `json:"rolloff"`   // 85% energy frequency, Hz
	Bandwidth []float64 `json:"bandwidth"` // Spread around centroid, Hz
}

// NewFeatureExtractor creates an extractor with the standard framing on
// the given DSP backend. A nil backend selects the primary one.
func NewFeatureExtractor(backend dsp.Backend) *FeatureExtractor {
	if backend == nil {
		backend = dsp.Default()
	}
	return &FeatureExtractor{
		backend:     backend,
		frameLength: DefaultFrameLength,
		hopLength:   DefaultHopLength,
	}
}

// FrameRMS returns per-frame root-mean-square energy. The series is empty
// when the buffer is shorter than one frame.
func (fe *FeatureExtractor) FrameRMS(buf *audio.Buffer) []float64 {
	energy := temporal.NewEnergy(fe.frameLength, fe.hopLength)
	return energy.ComputeRMS(buf.Samples)
}

// FrameEnergy returns per-frame sum-of-squares energy, the series used for
// silence detection and best-segment search
func (fe *FeatureExtractor) FrameEnergy(buf *audio.Buffer) []float64 {
	energy := temporal.NewEnergy(fe.frameLength, fe.hopLength)
	return energy.ComputeSumSquares(buf.Samples)
}

// ZeroCrossingRate returns the per-frame fraction of sign changes
func (fe *FeatureExtractor) ZeroCrossingRate(buf *audio.Buffer) []float64 {
	zcr := spectral.NewZeroCrossingRate(fe.frameLength, fe.hopLength)
	return zcr.ComputeFrames(buf.Samples)
}

// Spectral computes the centroid, rolloff, and bandwidth series from one
// STFT of the buffer. A buffer shorter than one frame yields empty series.
func (fe *FeatureExtractor) Spectral(buf *audio.Buffer) (*SpectralFeatures, error) {
	if len(buf.Samples) < fe.frameLength {
		return &SpectralFeatures{
			Centroid:  []float64{},
			Rolloff:   []float64{},
			Bandwidth: []float64{},
		}, nil
	}

	result, err := fe.backend.STFT(buf.Samples, fe.frameLength, fe.hopLength, buf.SampleRate)
	if err != nil {
		return nil, err
	}

	centroid := spectral.NewSpectralCentroid(buf.SampleRate)
	rolloff := spectral.NewSpectralRolloff(buf.SampleRate)
	bandwidth := spectral.NewSpectralBandwidth(buf.SampleRate)

	centroids := centroid.ComputeFrames(result.Magnitude)

	return &SpectralFeatures{
		Centroid:  centroids,
		Rolloff:   rolloff.ComputeFrames(result.Magnitude, DefaultRolloffThreshold),
		Bandwidth: bandwidth.ComputeFrames(result.Magnitude, centroids),
	}, nil
}

// HarmonicRatio returns the harmonic-to-percussive energy ratio, an HNR
// proxy. Degenerate buffers (too short for analysis, all-zero) yield 1.0.
func (fe *FeatureExtractor) HarmonicRatio(buf *audio.Buffer) float64 {
	if len(buf.Samples) < fe.frameLength {
		return 1.0
	}
	hpss := harmonic.NewHPSS()
	return hpss.EnergyRatio(buf.Samples, buf.SampleRate)
}

// PitchEstimate exposes the backend's fundamental-frequency estimate, in Hz
func (fe *FeatureExtractor) PitchEstimate(buf *audio.Buffer) float64 {
	return fe.backend.PitchEstimate(buf.Samples, buf.SampleRate)
}
