package refine

import (
	"github.com/RyanBlaney/voz-pura/algorithms/common"
	"github.com/RyanBlaney/voz-pura/audio"
	"github.com/RyanBlaney/voz-pura/dsp"
	"github.com/RyanBlaney/voz-pura/logging"
)

// SpectralDenoise applies a spectral gate: a per-bin noise floor is
// estimated from the buffer itself, and bins at or below twice that floor
// are attenuated to 10% of their magnitude rather than zeroed, preserving
// a natural noise bed. Reconstruction reuses the original phase.
//
// Any internal failure falls back to returning the input unchanged; the
// pipeline run continues with the unmodified buffer.
type SpectralDenoise struct {
	backend     dsp.Backend
	windowSize  int
	hopSize     int
	gateFactor  float64 // Threshold multiplier over the noise floor
	attenuation float64 // Residual fraction for gated bins
}

// NewSpectralDenoise creates the stage on the given backend. A nil
// backend selects the primary one.
func NewSpectralDenoise(backend dsp.Backend) *SpectralDenoise {
	if backend == nil {
		backend = dsp.Default()
	}
	return &SpectralDenoise{
		backend:     backend,
		windowSize:  2048,
		hopSize:     512,
		gateFactor:  2.0,
		attenuation: 0.1,
	}
}

func (d *SpectralDenoise) Name() string { return "spectral_denoise" }

func (d *SpectralDenoise) Process(in *audio.Buffer) (*audio.Buffer, bool) {
	logger := logging.WithFields(logging.Fields{
		"component": "spectral_denoise",
	})

	result, err := d.backend.STFT(in.Samples, d.windowSize, d.hopSize, in.SampleRate)
	if err != nil {
		logger.Warn("Analysis failed, passing buffer through", logging.Fields{
			"error": err.Error(),
		})
		return in, false
	}

	noiseFloor := d.estimateNoiseFloor(result.Magnitude, in.SampleRate)

	gated := make([][]float64, result.TimeFrames)
	for t := 0; t < result.TimeFrames; t++ {
		gated[t] = make([]float64, result.FreqBins)
		for f := 0; f < result.FreqBins; f++ {
			mag := result.Magnitude[t][f]
			if mag > noiseFloor[f]*d.gateFactor {
				gated[t][f] = mag
			} else {
				gated[t][f] = mag * d.attenuation
			}
		}
	}

	samples, err := d.backend.ISTFT(gated, result.Phase, d.windowSize, d.hopSize)
	if err != nil {
		logger.Warn("Resynthesis failed, passing buffer through", logging.Fields{
			"error": err.Error(),
		})
		return in, false
	}

	// The tail beyond the last full analysis frame was never transformed;
	// carry it over unchanged so the stage preserves duration
	if len(samples) < len(in.Samples) {
		samples = append(samples, in.Samples[len(samples):]...)
	}

	return audio.NewBuffer(samples, in.SampleRate), true
}

// estimateNoiseFloor returns a per-bin noise magnitude. When the buffer
// opens with at least half a second of frames, the floor is the per-bin
// median of that opening window (speech rarely starts instantly); shorter
// buffers fall back to the 10th percentile across all frames.
func (d *SpectralDenoise) estimateNoiseFloor(magnitude [][]float64, sampleRate int) []float64 {
	numFrames := len(magnitude)
	numBins := len(magnitude[0])

	noiseFrames := int(0.5 * float64(sampleRate) / float64(d.hopSize))

	floor := make([]float64, numBins)
	column := make([]float64, 0, numFrames)

	if noiseFrames > 0 && noiseFrames <= numFrames {
		for f := 0; f < numBins; f++ {
			column = column[:0]
			for t := 0; t < noiseFrames; t++ {
				column = append(column, magnitude[t][f])
			}
			floor[f] = common.Median(column)
		}
		return floor
	}

	for f := 0; f < numBins; f++ {
		column = column[:0]
		for t := 0; t < numFrames; t++ {
			column = append(column, magnitude[t][f])
		}
		floor[f] = common.Percentile(column, 10)
	}
	return floor
}
