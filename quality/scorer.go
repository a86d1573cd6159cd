package quality

import (
	"github.com/RyanBlaney/voz-pura/algorithms/common"
)

const snrEpsilon = 1e-10

// Scorer derives the SNR estimate, silence metrics, and the composite
// 0-100 score from feature series. Aggregation lives here rather than in
// the extractor so features and scoring stay independently testable.
type Scorer struct {
	hopLength int
}

// SilenceResult holds the speech-extent metrics of a buffer
type SilenceResult struct {
	EffectiveDuration float64 `json:"effective_duration"` // Speech extent, seconds
	SilenceRatio      float64 `json:"silence_ratio"`      // 1 - effective/total, in [0,1]
}

// NewScorer creates a scorer using the standard hop length
func NewScorer() *Scorer {
	return &Scorer{hopLength: DefaultHopLength}
}

// EstimateSNR estimates the signal-to-noise ratio from a per-frame RMS
// series. The noise floor is the 10th percentile; frames louder than twice
// the floor count as speech. With no speech frames the estimate is 0.
func (s *Scorer) EstimateSNR(rmsSeries []float64) float64 {
	if len(rmsSeries) == 0 {
		return 0.0
	}

	noiseFloor := common.Percentile(rmsSeries, 10)

	speech := make([]float64, 0, len(rmsSeries))
	for _, v := range rmsSeries {
		if v > 2.0*noiseFloor {
			speech = append(speech, v)
		}
	}

	if len(speech) == 0 {
		return 0.0
	}

	return common.Mean(speech) / (noiseFloor + snrEpsilon)
}

// SilenceMetrics measures the speech extent of a buffer from its per-frame
// energy series. The threshold is the 20th percentile of frame energy;
// effective duration spans from the first to the last frame above it. With
// no frames above threshold the buffer counts as all silence.
//
// The silence ratio is clamped to [0,1]: frame/hop rounding can push the
// measured speech extent slightly past the buffer's own duration, and a
// negative ratio is meaningless downstream.
func (s *Scorer) SilenceMetrics(frameEnergy []float64, totalDuration float64, sampleRate int) SilenceResult {
	if len(frameEnergy) == 0 || totalDuration <= 0 || sampleRate <= 0 {
		return SilenceResult{EffectiveDuration: 0.0, SilenceRatio: 1.0}
	}

	threshold := common.Percentile(frameEnergy, 20)

	first, last := -1, -1
	for i, e := range frameEnergy {
		if e > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return SilenceResult{EffectiveDuration: 0.0, SilenceRatio: 1.0}
	}

	effective := float64(last-first) * float64(s.hopLength) / float64(sampleRate)
	ratio := common.Clamp(1.0-effective/totalDuration, 0.0, 1.0)

	return SilenceResult{
		EffectiveDuration: effective,
		SilenceRatio:      ratio,
	}
}

// CompositeScore combines duration, SNR, harmonic ratio, and silence ratio
// into a 0-100 score. Each term is a step function over fixed thresholds,
// evaluated in descending order, so the result is exactly the sum of the
// four selected buckets. The reachable range is [20,100].
func (s *Scorer) CompositeScore(duration, snrEstimate, harmonicRatio, silenceRatio float64) float64 {
	score := 0.0

	switch {
	case duration >= 10:
		score += 25
	case duration >= 5:
		score += 20
	case duration >= 3:
		score += 15
	default:
		score += 5
	}

	switch {
	case snrEstimate > 20:
		score += 25
	case snrEstimate > 10:
		score += 20
	case snrEstimate > 5:
		score += 15
	default:
		score += 5
	}

	switch {
	case harmonicRatio > 2.0:
		score += 25
	case harmonicRatio > 1.0:
		score += 20
	default:
		score += 10
	}

	switch {
	case silenceRatio < 0.1:
		score += 25
	case silenceRatio < 0.3:
		score += 20
	case silenceRatio < 0.5:
		score += 15
	default:
		score += 5
	}

	return score
}
