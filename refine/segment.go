package refine

import (
	"github.com/RyanBlaney/voz-pura/algorithms/temporal"
	"github.com/RyanBlaney/voz-pura/audio"
)

// DefaultTargetDuration is the refined-clip length in seconds
const DefaultTargetDuration = 15.0

// BestSegmentExtract keeps the most energetic contiguous window of a long
// buffer. A buffer no longer than the target duration passes through
// unchanged. The search slides a fixed-width window across the per-frame
// energy series; the first window with the strictly highest mean energy
// wins, so ties resolve to the earliest start.
type BestSegmentExtract struct {
	targetDuration float64
	frameLength    int
	hopLength      int
}

// NewBestSegmentExtract creates the stage; a non-positive duration
// selects the default
func NewBestSegmentExtract(targetDuration float64) *BestSegmentExtract {
	if targetDuration <= 0 {
		targetDuration = DefaultTargetDuration
	}
	return &BestSegmentExtract{
		targetDuration: targetDuration,
		frameLength:    2048,
		hopLength:      512,
	}
}

func (b *BestSegmentExtract) Name() string { return "best_segment" }

func (b *BestSegmentExtract) Process(in *audio.Buffer) (*audio.Buffer, bool) {
	if in.Duration() <= b.targetDuration {
		return in, true
	}

	energyCalc := temporal.NewEnergy(b.frameLength, b.hopLength)
	energy := energyCalc.ComputeSumSquares(in.Samples)

	targetFrames := int(b.targetDuration * float64(in.SampleRate) / float64(b.hopLength))
	if targetFrames <= 0 || len(energy) == 0 {
		return in, true
	}

	// A buffer barely over the target can frame to fewer than targetFrames
	// entries (the trailing partial frame is dropped); the single full-span
	// window is still searched and the extraction stays exact
	if targetFrames > len(energy) {
		targetFrames = len(energy)
	}

	// Running-sum sweep; strictly-greater keeps the first best window
	windowSum := 0.0
	for i := 0; i < targetFrames; i++ {
		windowSum += energy[i]
	}
	bestSum := windowSum
	bestStart := 0

	for i := 1; i <= len(energy)-targetFrames; i++ {
		windowSum += energy[i+targetFrames-1] - energy[i-1]
		if windowSum > bestSum {
			bestSum = windowSum
			bestStart = i
		}
	}

	targetSamples := int(b.targetDuration * float64(in.SampleRate))
	start := energyCalc.FrameToSample(bestStart)
	if start+targetSamples > len(in.Samples) {
		start = len(in.Samples) - targetSamples
	}

	out := make([]float64, targetSamples)
	copy(out, in.Samples[start:start+targetSamples])

	return audio.NewBuffer(out, in.SampleRate), true
}
