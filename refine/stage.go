// Package refine transforms decoded audio buffers into training-ready
// clips through five ordered stages: level normalization, silence
// trimming, spectral-gate denoising, resampling, and best-segment
// extraction.
package refine

import "github.com/RyanBlaney/voz-pura/audio"

// Stage is one buffer-to-buffer refinement step. Process never mutates
// its input; ok reports whether the stage actually applied its transform
// (a recoverable internal failure returns the input unchanged with
// ok=false, and the pipeline continues).
type Stage interface {
	Name() string
	Process(in *audio.Buffer) (*audio.Buffer, bool)
}
