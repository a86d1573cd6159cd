package common

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3.5}, 3.5},
		// (1+2+3+4)/4 = 2.5
		{"simple", []float64{1, 2, 3, 4}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.data); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single value yields zero, not NaN", []float64{7}, 0},
		// mean = 5, squared deviations sum = 9+1+1+1+0+0+4+16 = 32,
		// population variance = 32/8 = 4, std = 2
		{"known population", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StdDev(tt.data); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		p    float64
		want float64
	}{
		{"empty", nil, 50, 0},
		{"single", []float64{5}, 90, 5},
		// h = 0.25*3 = 0.75 -> 1 + 0.75*(2-1) = 1.75
		{"interpolated quartile", []float64{1, 2, 3, 4}, 25, 1.75},
		// h = 0.5*3 = 1.5 -> 2 + 0.5*(3-2) = 2.5
		{"even median", []float64{1, 2, 3, 4}, 50, 2.5},
		{"odd median", []float64{3, 1, 2}, 50, 2},
		{"p0 is minimum", []float64{4, 1, 3}, 0, 1},
		{"p100 is maximum", []float64{4, 1, 3}, 100, 4},
		// h = 0.1*9 = 0.9 -> 1 + 0.9*(2-1) = 1.9
		{"tenth of ramp", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 10, 1.9},
		{"out of range", []float64{1, 2}, 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.data, tt.p); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.data, tt.p, got, tt.want)
			}
		})
	}
}

func TestRMS(t *testing.T) {
	// sqrt((9+16)/2) = sqrt(12.5)
	got := RMS([]float64{3, -4})
	want := math.Sqrt(12.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}

	if RMS(nil) != 0 {
		t.Error("empty input should yield 0")
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float64{0.1, -0.9, 0.5}); got != 0.9 {
		t.Errorf("got %v, want 0.9", got)
	}
	if Peak(nil) != 0 {
		t.Error("empty input should yield 0")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.2, 0, 1, 0},
		{1.7, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}
