package refine

import (
	"math"

	"github.com/RyanBlaney/voz-pura/algorithms/common"
	"github.com/RyanBlaney/voz-pura/audio"
)

// DefaultTargetPeakDB is the normalization target in dBFS
const DefaultTargetPeakDB = -3.0

// Normalize scales a buffer so its peak sits at a fixed level below full
// scale. A silent buffer passes through unchanged.
type Normalize struct {
	targetPeak float64
}

// NewNormalize creates the stage with the standard -3 dB target
func NewNormalize() *Normalize {
	return &Normalize{
		targetPeak: math.Pow(10, DefaultTargetPeakDB/20.0),
	}
}

func (n *Normalize) Name() string { return "normalize" }

func (n *Normalize) Process(in *audio.Buffer) (*audio.Buffer, bool) {
	peak := common.Peak(in.Samples)
	if peak == 0 {
		return in, true
	}

	scale := n.targetPeak / peak

	out := make([]float64, len(in.Samples))
	for i, s := range in.Samples {
		out[i] = s * scale
	}

	return audio.NewBuffer(out, in.SampleRate), true
}
