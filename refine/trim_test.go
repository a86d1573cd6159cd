package refine

import (
	"testing"

	"github.com/RyanBlaney/voz-pura/audio"
)

func TestTrimSilenceRemovesPadding(t *testing.T) {
	stage := NewTrimSilence()

	// 1s silence + 1s tone + 1s silence at 22050 Hz
	sr := 22050
	samples := make([]float64, 0, 3*sr)
	samples = append(samples, make([]float64, sr)...)
	samples = append(samples, sineSamples(440, 0.8, sr, sr)...)
	samples = append(samples, make([]float64, sr)...)

	in := audio.NewBuffer(samples, sr)

	out, ok := stage.Process(in)
	if !ok {
		t.Fatal("stage reported failure")
	}

	if out.Len() > in.Len() {
		t.Errorf("output grew: %d -> %d samples", in.Len(), out.Len())
	}

	// The kept core should be roughly the 1s tone; frame granularity
	// allows up to one frame of slack on each side
	minLen := sr - 2048
	maxLen := sr + 2*2048
	if out.Len() < minLen || out.Len() > maxLen {
		t.Errorf("trimmed length = %d samples, want ~%d", out.Len(), sr)
	}

	// The trimmed buffer should open loud, not with the silent lead
	if peak(out.Samples[:2048]) < 0.05 {
		t.Error("output still starts with silence")
	}
}

func TestTrimSilenceNeverGrows(t *testing.T) {
	stage := NewTrimSilence()

	buffers := []*audio.Buffer{
		sineBuffer(440, 0.8, 1.0, 22050),
		audio.NewBuffer(noiseSamples(0.3, 44100), 22050),
		audio.NewBuffer(make([]float64, 8192), 22050),
		audio.NewBuffer([]float64{0.1, -0.2, 0.3}, 22050),
	}

	for i, in := range buffers {
		out, _ := stage.Process(in)
		if out.Len() > in.Len() {
			t.Errorf("buffer %d grew: %d -> %d samples", i, in.Len(), out.Len())
		}
	}
}

func TestTrimSilenceNoSpeechPassesThrough(t *testing.T) {
	stage := NewTrimSilence()

	// All-zero buffer: no frame exceeds the threshold, so the stage must
	// return the input unchanged rather than an empty clip
	in := audio.NewBuffer(make([]float64, 8192), 22050)

	out, ok := stage.Process(in)
	if !ok {
		t.Fatal("stage reported failure")
	}
	if !sameSamples(in, out) {
		t.Error("no-speech buffer was not passed through unchanged")
	}
}

func TestTrimSilenceShortBufferPassesThrough(t *testing.T) {
	stage := NewTrimSilence()

	// Shorter than one analysis frame
	in := audio.NewBuffer([]float64{0.5, -0.5, 0.5}, 22050)

	out, ok := stage.Process(in)
	if !ok {
		t.Fatal("stage reported failure")
	}
	if !sameSamples(in, out) {
		t.Error("short buffer was not passed through unchanged")
	}
}
