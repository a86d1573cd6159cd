package dsp

import (
	"math"
	"testing"
)

func sine(freq, amplitude float64, n, sampleRate int) []float64 {
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind     Kind
		wantName string
		wantErr  bool
	}{
		{KindSpectral, "spectral", false},
		{KindTimeDomain, "timedomain", false},
		{Kind(""), "spectral", false}, // Empty selects the primary
		{Kind("fourier"), "", true},
	}

	for _, tt := range tests {
		backend, err := New(tt.kind)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q) succeeded, want error", tt.kind)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q) failed: %v", tt.kind, err)
			continue
		}
		if backend.Name() != tt.wantName {
			t.Errorf("New(%q).Name() = %q, want %q", tt.kind, backend.Name(), tt.wantName)
		}
	}
}

func TestPitchEstimate(t *testing.T) {
	backends := []Backend{NewSpectralBackend(), NewTimeDomainBackend()}

	for _, backend := range backends {
		t.Run(backend.Name(), func(t *testing.T) {
			// 220 Hz sits comfortably in the 60-500 Hz search range
			signal := sine(220, 0.8, 44100, 44100)

			got := backend.PitchEstimate(signal, 44100)
			if math.Abs(got-220) > 5 {
				t.Errorf("pitch = %v Hz, want ~220", got)
			}
		})
	}
}

func TestPitchEstimateSilence(t *testing.T) {
	backends := []Backend{NewSpectralBackend(), NewTimeDomainBackend()}

	for _, backend := range backends {
		t.Run(backend.Name(), func(t *testing.T) {
			if got := backend.PitchEstimate(make([]float64, 4096), 44100); got != 0 {
				t.Errorf("pitch of silence = %v, want 0", got)
			}
		})
	}
}

func TestSTFTRoundTrip(t *testing.T) {
	backend := NewSpectralBackend()

	// 8192 samples, window 2048, hop 512:
	// frames = (8192-2048)/512 + 1 = 13, reconstruction length
	// = 12*512 + 2048 = 8192
	signal := sine(440, 0.5, 8192, 22050)

	result, err := backend.STFT(signal, 2048, 512, 22050)
	if err != nil {
		t.Fatalf("STFT failed: %v", err)
	}
	if result.TimeFrames != 13 || result.FreqBins != 1025 {
		t.Fatalf("shape = %dx%d, want 13x1025", result.TimeFrames, result.FreqBins)
	}

	recon, err := backend.ISTFT(result.Magnitude, result.Phase, 2048, 512)
	if err != nil {
		t.Fatalf("ISTFT failed: %v", err)
	}
	if len(recon) != len(signal) {
		t.Fatalf("reconstruction length = %d, want %d", len(recon), len(signal))
	}

	// Interior samples reconstruct exactly up to numeric error; the first
	// and last window of samples see partial overlap coverage
	for i := 2048; i < len(signal)-2048; i++ {
		if math.Abs(recon[i]-signal[i]) > 1e-6 {
			t.Fatalf("sample %d: recon %v, signal %v", i, recon[i], signal[i])
		}
	}
}

func TestSTFTErrors(t *testing.T) {
	backends := []Backend{NewSpectralBackend(), NewTimeDomainBackend()}

	for _, backend := range backends {
		t.Run(backend.Name(), func(t *testing.T) {
			if _, err := backend.STFT(nil, 2048, 512, 22050); err == nil {
				t.Error("empty signal should fail")
			}
			if _, err := backend.STFT(make([]float64, 100), 2048, 512, 22050); err == nil {
				t.Error("signal shorter than a window should fail")
			}
			if _, err := backend.STFT(make([]float64, 4096), 0, 512, 22050); err == nil {
				t.Error("zero window size should fail")
			}
		})
	}
}
