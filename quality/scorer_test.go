package quality

import (
	"math"
	"testing"
)

// Representative values for every scoring bucket, with the points each
// bucket awards. The cross product covers all 4*4*3*4 = 192 combinations.
var (
	durationBuckets = []struct {
		value  float64
		points float64
	}{
		{12.0, 25}, // >= 10
		{7.0, 20},  // >= 5
		{4.0, 15},  // >= 3
		{1.0, 5},   // below 3
	}

	snrBuckets = []struct {
		value  float64
		points float64
	}{
		{25.0, 25}, // > 20
		{15.0, 20}, // > 10
		{7.0, 15},  // > 5
		{2.0, 5},   // <= 5
	}

	harmonicBuckets = []struct {
		value  float64
		points float64
	}{
		{3.0, 25}, // > 2.0
		{1.5, 20}, // > 1.0
		{0.5, 10}, // <= 1.0
	}

	silenceBuckets = []struct {
		value  float64
		points float64
	}{
		{0.05, 25}, // < 0.1
		{0.2, 20},  // < 0.3
		{0.4, 15},  // < 0.5
		{0.8, 5},   // >= 0.5
	}
)

func TestCompositeScoreAllBuckets(t *testing.T) {
	scorer := NewScorer()

	for _, d := range durationBuckets {
		for _, s := range snrBuckets {
			for _, h := range harmonicBuckets {
				for _, sil := range silenceBuckets {
					want := d.points + s.points + h.points + sil.points
					got := scorer.CompositeScore(d.value, s.value, h.value, sil.value)

					if got != want {
						t.Errorf("CompositeScore(%v, %v, %v, %v) = %v, want %v",
							d.value, s.value, h.value, sil.value, got, want)
					}
					if got < 20 || got > 100 {
						t.Errorf("CompositeScore(%v, %v, %v, %v) = %v, outside [20,100]",
							d.value, s.value, h.value, sil.value, got)
					}
				}
			}
		}
	}
}

func TestCompositeScoreScenarios(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name          string
		duration      float64
		snr           float64
		harmonicRatio float64
		silenceRatio  float64
		want          float64
	}{
		{
			// 11s -> 25, snr 25 -> 25, hnr 2.5 -> 25, silence 0.05 -> 25
			name:     "excellent recording scores 100",
			duration: 11, snr: 25, harmonicRatio: 2.5, silenceRatio: 0.05,
			want: 100,
		},
		{
			// 2s -> 5, snr 1 -> 5, hnr 0.5 -> 10, silence 0.9 -> 5
			name:     "poor recording scores 25",
			duration: 2, snr: 1, harmonicRatio: 0.5, silenceRatio: 0.9,
			want: 25,
		},
		{
			// Boundary values: 10s is >= 10, snr 20 is NOT > 20,
			// hnr 1.0 is NOT > 1.0, silence 0.1 is NOT < 0.1
			// 25 + 20 + 10 + 20 = 75
			name:     "threshold boundaries",
			duration: 10, snr: 20, harmonicRatio: 1.0, silenceRatio: 0.1,
			want: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.CompositeScore(tt.duration, tt.snr, tt.harmonicRatio, tt.silenceRatio)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateSNR(t *testing.T) {
	scorer := NewScorer()

	t.Run("empty series", func(t *testing.T) {
		if got := scorer.EstimateSNR(nil); got != 0 {
			t.Errorf("got %v, want 0", got)
		}
	})

	t.Run("constant series has no speech frames", func(t *testing.T) {
		// Noise floor = 0.5, speech threshold = 1.0, no frame exceeds it
		series := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
		if got := scorer.EstimateSNR(series); got != 0 {
			t.Errorf("got %v, want 0", got)
		}
	})

	t.Run("one loud frame over quiet floor", func(t *testing.T) {
		// Nine frames at 0.01 and one at 1.0:
		// 10th percentile of the sorted series = 0.01 (interpolation between
		// index 0 and 1, both 0.01); speech = frames > 0.02 = {1.0};
		// SNR = 1.0 / (0.01 + 1e-10) ~= 100
		series := []float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 1.0}

		got := scorer.EstimateSNR(series)
		if math.Abs(got-100.0) > 0.01 {
			t.Errorf("got %v, want ~100", got)
		}
	})
}

func TestSilenceMetrics(t *testing.T) {
	scorer := NewScorer()

	t.Run("empty energy series is all silence", func(t *testing.T) {
		got := scorer.SilenceMetrics(nil, 5.0, 22050)
		if got.EffectiveDuration != 0 || got.SilenceRatio != 1.0 {
			t.Errorf("got %+v, want {0, 1}", got)
		}
	})

	t.Run("uniform energy has no frames above threshold", func(t *testing.T) {
		// Threshold = 20th percentile = 1.0; no frame is strictly greater
		energy := []float64{1.0, 1.0, 1.0, 1.0, 1.0}

		got := scorer.SilenceMetrics(energy, 5.0, 22050)
		if got.EffectiveDuration != 0 || got.SilenceRatio != 1.0 {
			t.Errorf("got %+v, want {0, 1}", got)
		}
	})

	t.Run("speech extent between first and last loud frame", func(t *testing.T) {
		// Energy ramp 1..10, threshold = 20th percentile:
		// h = 0.2*9 = 1.8 -> 2 + 0.8*(3-2) = 2.8; frames > 2.8 are
		// indices 2..9, effective = (9-2)*512/22050 = 0.16254s
		energy := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		total := 0.3

		got := scorer.SilenceMetrics(energy, total, 22050)

		wantEffective := 7.0 * 512.0 / 22050.0
		if math.Abs(got.EffectiveDuration-wantEffective) > 1e-9 {
			t.Errorf("EffectiveDuration = %v, want %v", got.EffectiveDuration, wantEffective)
		}

		wantRatio := 1.0 - wantEffective/total
		if math.Abs(got.SilenceRatio-wantRatio) > 1e-9 {
			t.Errorf("SilenceRatio = %v, want %v", got.SilenceRatio, wantRatio)
		}
	})

	t.Run("silence ratio clamps to zero when rounding overshoots", func(t *testing.T) {
		// Frame/hop rounding can make the measured speech extent exceed the
		// buffer's own duration; the ratio must clamp instead of going
		// negative. Effective = (9-2)*512/1000 = 3.584s against a 2s total.
		energy := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

		got := scorer.SilenceMetrics(energy, 2.0, 1000)
		if got.SilenceRatio != 0 {
			t.Errorf("SilenceRatio = %v, want 0 (clamped)", got.SilenceRatio)
		}
	})
}
