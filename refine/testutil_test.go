package refine

import (
	"math"

	"github.com/RyanBlaney/voz-pura/audio"
)

// sineBuffer generates a test tone
func sineBuffer(freq, amplitude, seconds float64, sampleRate int) *audio.Buffer {
	n := int(seconds * float64(sampleRate))
	return audio.NewBuffer(sineSamples(freq, amplitude, n, sampleRate), sampleRate)
}

func sineSamples(freq, amplitude float64, n, sampleRate int) []float64 {
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

// noiseSamples generates deterministic pseudo-noise from a fixed LCG seed
func noiseSamples(amplitude float64, n int) []float64 {
	samples := make([]float64, n)
	state := uint64(0x2545F4914F6CDD1D)
	for i := 0; i < n; i++ {
		state = state*6364136223846793005 + 1442695040888963407
		// Top bits to [-1, 1)
		samples[i] = amplitude * (float64(int64(state>>11))/float64(1<<52) - 1.0)
	}
	return samples
}

// peak returns the maximum absolute sample value
func peak(samples []float64) float64 {
	p := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}

// sameSamples reports whether two buffers are bit-identical
func sameSamples(a, b *audio.Buffer) bool {
	if a.SampleRate != b.SampleRate || len(a.Samples) != len(b.Samples) {
		return false
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			return false
		}
	}
	return true
}
