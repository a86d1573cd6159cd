package refine

import (
	"math"

	"github.com/RyanBlaney/voz-pura/algorithms/common"
	"github.com/RyanBlaney/voz-pura/algorithms/temporal"
	"github.com/RyanBlaney/voz-pura/audio"
)

// DefaultTrimTopDB is the silence threshold below the buffer's peak
const DefaultTrimTopDB = 20.0

// TrimSilence removes leading and trailing frames whose RMS energy sits
// more than a fixed number of dB below the buffer's peak amplitude,
// keeping the contiguous core. A buffer with no frames above threshold
// (or too short to frame) passes through unchanged rather than collapsing
// to an empty clip.
type TrimSilence struct {
	topDB       float64
	frameLength int
	hopLength   int
}

// NewTrimSilence creates the stage with the standard 20 dB threshold and
// analysis framing
func NewTrimSilence() *TrimSilence {
	return &TrimSilence{
		topDB:       DefaultTrimTopDB,
		frameLength: 2048,
		hopLength:   512,
	}
}

func (t *TrimSilence) Name() string { return "trim_silence" }

func (t *TrimSilence) Process(in *audio.Buffer) (*audio.Buffer, bool) {
	energy := temporal.NewEnergy(t.frameLength, t.hopLength)
	rms := energy.ComputeRMS(in.Samples)
	if len(rms) == 0 {
		return in, true
	}

	peak := common.Peak(in.Samples)
	threshold := peak * math.Pow(10, -t.topDB/20.0)

	first, last := -1, -1
	for i, v := range rms {
		if v > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return in, true
	}

	start := energy.FrameToSample(first)
	end := min(len(in.Samples), energy.FrameToSample(last)+t.frameLength)

	out := make([]float64, end-start)
	copy(out, in.Samples[start:end])

	return audio.NewBuffer(out, in.SampleRate), true
}
