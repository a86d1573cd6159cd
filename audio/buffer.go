// Package audio holds the in-memory sample buffer type and the external
// decode/encode collaborators (ffmpeg subprocesses).
package audio

// Buffer is a mono audio buffer: normalized float samples (≈[-1,1]) at a
// positive sample rate. Buffers are treated as immutable — every pipeline
// stage consumes one Buffer and produces a new one, never mutating its
// input in place.
type Buffer struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// NewBuffer wraps samples at the given rate. The buffer takes ownership
// of the slice; callers must not mutate it afterwards.
func NewBuffer(samples []float64, sampleRate int) *Buffer {
	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
	}
}

// Len returns the sample count
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// Duration returns the buffer length in seconds
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0.0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Clone returns a deep copy of the buffer
func (b *Buffer) Clone() *Buffer {
	samples := make([]float64, len(b.Samples))
	copy(samples, b.Samples)
	return &Buffer{
		Samples:    samples,
		SampleRate: b.SampleRate,
	}
}
