package quality

// Record is the per-file quality summary: identity, structure, named
// metrics, and the final composite score. Records are created once per
// analyzed file and never mutated afterwards.
type Record struct {
	File     string `json:"file"`     // Full source path
	Filename string `json:"filename"` // Base name, used for output naming

	SampleRate int     `json:"sample_rate"`
	Duration   float64 `json:"duration"` // Seconds
	SizeBytes  int64   `json:"size_bytes"`
	NumSamples int     `json:"num_samples"`

	RMSMean               float64 `json:"rms_mean"`
	RMSStd                float64 `json:"rms_std"`
	ZCRMean               float64 `json:"zcr_mean"`
	ZCRStd                float64 `json:"zcr_std"`
	SpectralCentroidMean  float64 `json:"spectral_centroid_mean"`
	SpectralRolloffMean   float64 `json:"spectral_rolloff_mean"`
	SpectralBandwidthMean float64 `json:"spectral_bandwidth_mean"`
	SNREstimate           float64 `json:"snr_estimate"`
	HarmonicNoiseRatio    float64 `json:"harmonic_noise_ratio"`
	EffectiveDuration     float64 `json:"effective_duration"`
	SilenceRatio          float64 `json:"silence_ratio"`

	QualityScore float64 `json:"quality_score"` // Composite, in [20,100]
}
