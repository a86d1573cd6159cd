package refine

import (
	"math"
	"testing"
)

func TestResampleSameRatePassesThrough(t *testing.T) {
	stage := NewResample(22050)

	in := sineBuffer(440, 0.5, 0.5, 22050)

	out, ok := stage.Process(in)
	if !ok {
		t.Fatal("stage reported failure")
	}
	if !sameSamples(in, out) {
		t.Error("matching-rate buffer was not passed through unchanged")
	}
}

func TestResampleLength(t *testing.T) {
	tests := []struct {
		name     string
		fromRate int
		toRate   int
		inLen    int
		wantLen  int
	}{
		// 44100 -> 22050 halves the sample count
		{"downsample 2:1", 44100, 22050, 44100, 22050},
		// 22050 -> 44100 doubles it
		{"upsample 1:2", 22050, 44100, 22050, 44100},
		// 48000 -> 22050: round(48000 * 22050/48000) = 22050
		{"non-integer ratio", 48000, 22050, 48000, 22050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := NewResample(tt.toRate)
			in := sineBuffer(440, 0.5, float64(tt.inLen)/float64(tt.fromRate), tt.fromRate)

			out, ok := stage.Process(in)
			if !ok {
				t.Fatal("stage reported failure")
			}

			if out.Len() != tt.wantLen {
				t.Errorf("output length = %d, want %d", out.Len(), tt.wantLen)
			}
			if out.SampleRate != tt.toRate {
				t.Errorf("output rate = %d, want %d", out.SampleRate, tt.toRate)
			}
		})
	}
}

func TestResamplePreservesTone(t *testing.T) {
	// A band-limited 440 Hz tone should survive 44100 -> 22050 nearly
	// intact: interior output samples must match the ideal sine at the
	// new rate. Edges are excluded, the sinc kernel is truncated there.
	stage := NewResample(22050)

	in := sineBuffer(440, 0.5, 1.0, 44100)

	out, ok := stage.Process(in)
	if !ok {
		t.Fatal("stage reported failure")
	}

	for n := 1000; n < out.Len()-1000; n += 97 {
		want := 0.5 * math.Sin(2*math.Pi*440*float64(n)/22050)
		if math.Abs(out.Samples[n]-want) > 0.02 {
			t.Fatalf("sample %d = %v, want %v", n, out.Samples[n], want)
		}
	}
}
