package spectral

// ZeroCrossingRate calculates the per-frame fraction of sign changes.
// High ZCR indicates fricatives/unvoiced speech or noise, low ZCR
// indicates voiced speech.
type ZeroCrossingRate struct {
	frameSize int
	hopSize   int
}

// NewZeroCrossingRate creates a calculator with the given framing
func NewZeroCrossingRate(frameSize, hopSize int) *ZeroCrossingRate {
	return &ZeroCrossingRate{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// Compute calculates the normalized ZCR (0-1) for a single frame
func (zcr *ZeroCrossingRate) Compute(frame []float64) float64 {
	if len(frame) < 2 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0 && frame[i] < 0) || (frame[i-1] < 0 && frame[i] >= 0) {
			crossings++
		}
	}

	// Normalize by maximum possible crossings (alternating signal)
	return float64(crossings) / float64(len(frame)-1)
}

// ComputeFrames calculates normalized ZCR for overlapping frames of a
// signal. The trailing partial frame is dropped.
func (zcr *ZeroCrossingRate) ComputeFrames(signal []float64) []float64 {
	if len(signal) < zcr.frameSize || zcr.frameSize <= 0 || zcr.hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-zcr.frameSize)/zcr.hopSize + 1
	zcrValues := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * zcr.hopSize
		zcrValues[i] = zcr.Compute(signal[startIdx : startIdx+zcr.frameSize])
	}

	return zcrValues
}
