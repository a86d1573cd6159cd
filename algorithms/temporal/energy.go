package temporal

import (
	"math"
)

// Energy computes frame-based energy features. Frames start at multiples
// of hopSize and the trailing partial frame is dropped, so every series
// here has length (len(signal)-frameSize)/hopSize + 1, or 0 when the
// signal is shorter than one frame.
type Energy struct {
	frameSize int
	hopSize   int
}

// NewEnergy creates a new energy calculator
func NewEnergy(frameSize, hopSize int) *Energy {
	return &Energy{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// ComputeRMS calculates per-frame root-mean-square energy
func (e *Energy) ComputeRMS(signal []float64) []float64 {
	if len(signal) < e.frameSize || e.frameSize <= 0 || e.hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-e.frameSize)/e.hopSize + 1
	energies := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * e.hopSize
		endIdx := startIdx + e.frameSize

		sumSquares := 0.0
		for j := startIdx; j < endIdx; j++ {
			sumSquares += signal[j] * signal[j]
		}
		energies[i] = math.Sqrt(sumSquares / float64(e.frameSize))
	}

	return energies
}

// ComputeSumSquares calculates per-frame sum-of-squares energy (not
// normalized by frame length)
func (e *Energy) ComputeSumSquares(signal []float64) []float64 {
	if len(signal) < e.frameSize || e.frameSize <= 0 || e.hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-e.frameSize)/e.hopSize + 1
	energies := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * e.hopSize
		endIdx := startIdx + e.frameSize

		sumSquares := 0.0
		for j := startIdx; j < endIdx; j++ {
			sumSquares += signal[j] * signal[j]
		}
		energies[i] = sumSquares
	}

	return energies
}

// FrameToSample converts a frame index to the sample index where that
// frame starts
func (e *Energy) FrameToSample(frameIdx int) int {
	return frameIdx * e.hopSize
}

// NumFrames reports how many full frames fit in a signal of the given length
func (e *Energy) NumFrames(signalLen int) int {
	if signalLen < e.frameSize || e.frameSize <= 0 || e.hopSize <= 0 {
		return 0
	}
	return (signalLen-e.frameSize)/e.hopSize + 1
}
