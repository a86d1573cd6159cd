package refine

import (
	"math"

	"github.com/RyanBlaney/voz-pura/audio"
)

// DefaultTargetSampleRate is the refined-clip sample rate
const DefaultTargetSampleRate = 22050

// Resample converts a buffer to a target sample rate with a windowed-sinc
// interpolator. A buffer already at the target rate passes through
// unchanged.
type Resample struct {
	targetRate int
	taps       int // Sinc half-width in zero crossings
}

// NewResample creates the stage for the given target rate; a
// non-positive rate selects the default
func NewResample(targetRate int) *Resample {
	if targetRate <= 0 {
		targetRate = DefaultTargetSampleRate
	}
	return &Resample{
		targetRate: targetRate,
		taps:       16,
	}
}

func (r *Resample) Name() string { return "resample" }

func (r *Resample) Process(in *audio.Buffer) (*audio.Buffer, bool) {
	if in.SampleRate == r.targetRate || len(in.Samples) == 0 {
		return in, true
	}

	ratio := float64(r.targetRate) / float64(in.SampleRate)
	outLen := int(math.Round(float64(len(in.Samples)) * ratio))
	if outLen == 0 {
		outLen = 1
	}

	// When downsampling, the sinc cutoff shrinks to the output Nyquist to
	// avoid aliasing; upsampling keeps the full input band
	cutoff := math.Min(1.0, ratio)

	out := make([]float64, outLen)
	for n := 0; n < outLen; n++ {
		// Position of this output sample on the input time axis
		t := float64(n) / ratio

		center := int(math.Floor(t))
		lo := center - r.taps + 1
		hi := center + r.taps

		sum := 0.0
		for k := max(0, lo); k <= min(len(in.Samples)-1, hi); k++ {
			x := t - float64(k)
			sum += in.Samples[k] * r.kernel(x, cutoff)
		}
		out[n] = sum
	}

	return audio.NewBuffer(out, r.targetRate), true
}

// kernel is the Hann-windowed sinc interpolation filter
func (r *Resample) kernel(x, cutoff float64) float64 {
	if math.Abs(x) >= float64(r.taps) {
		return 0.0
	}
	window := 0.5 * (1.0 + math.Cos(math.Pi*x/float64(r.taps)))
	return cutoff * sinc(cutoff*x) * window
}

// sinc is the normalized sinc function sin(πx)/(πx)
func sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
