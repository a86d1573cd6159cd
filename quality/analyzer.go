package quality

import (
	"os"
	"path/filepath"

	"github.com/RyanBlaney/voz-pura/algorithms/common"
	"github.com/RyanBlaney/voz-pura/audio"
	"github.com/RyanBlaney/voz-pura/dsp"
	"github.com/RyanBlaney/voz-pura/logging"
)

// AnalyzerConfig holds analyzer configuration
type AnalyzerConfig struct {
	Backend dsp.Kind             `json:"backend"` // DSP backend selection
	Decoder *audio.DecoderConfig `json:"decoder"`
}

// DefaultAnalyzerConfig returns the default analyzer configuration
func DefaultAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		Backend: dsp.KindSpectral,
		Decoder: audio.DefaultDecoderConfig(),
	}
}

// Analyzer produces a quality Record per audio file: decode, feature
// extraction, scoring
type Analyzer struct {
	decoder   *audio.Decoder
	extractor *FeatureExtractor
	scorer    *Scorer
}

// NewAnalyzer creates an analyzer. An unknown backend kind is an error.
func NewAnalyzer(config *AnalyzerConfig) (*Analyzer, error) {
	if config == nil {
		config = DefaultAnalyzerConfig()
	}

	backend, err := dsp.New(config.Backend)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		decoder:   audio.NewDecoder(config.Decoder),
		extractor: NewFeatureExtractor(backend),
		scorer:    NewScorer(),
	}, nil
}

// AnalyzeFile decodes path and returns its quality record. Decode
// failures surface as *audio.DecodeError so corpus-level callers can skip
// the file and continue. Degenerate audio (all-zero, shorter than one
// analysis frame) never fails; its metrics fall back to sentinel values
// and the score stays computable.
func (a *Analyzer) AnalyzeFile(path string) (*Record, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "quality_analyzer",
		"file":      path,
	})

	buf, err := a.decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return a.analyzeBuffer(path, buf, logger)
}

// AnalyzeBuffer scores an already-decoded buffer, attributing it to path
// for identity and size metadata
func (a *Analyzer) AnalyzeBuffer(path string, buf *audio.Buffer) (*Record, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "quality_analyzer",
		"file":      path,
	})
	return a.analyzeBuffer(path, buf, logger)
}

func (a *Analyzer) analyzeBuffer(path string, buf *audio.Buffer, logger logging.Logger) (*Record, error) {
	var sizeBytes int64
	if info, err := os.Stat(path); err == nil {
		sizeBytes = info.Size()
	}

	record := &Record{
		File:       path,
		Filename:   filepath.Base(path),
		SampleRate: buf.SampleRate,
		Duration:   buf.Duration(),
		SizeBytes:  sizeBytes,
		NumSamples: buf.Len(),
	}

	rms := a.extractor.FrameRMS(buf)
	record.RMSMean = common.Mean(rms)
	record.RMSStd = common.StdDev(rms)

	zcr := a.extractor.ZeroCrossingRate(buf)
	record.ZCRMean = common.Mean(zcr)
	record.ZCRStd = common.StdDev(zcr)

	spec, err := a.extractor.Spectral(buf)
	if err != nil {
		// Spectral analysis can fail only on degenerate framing; score
		// the file from the temporal features alone
		logger.Warn("Spectral feature extraction failed", logging.Fields{
			"error": err.Error(),
		})
	} else {
		record.SpectralCentroidMean = common.Mean(spec.Centroid)
		record.SpectralRolloffMean = common.Mean(spec.Rolloff)
		record.SpectralBandwidthMean = common.Mean(spec.Bandwidth)
	}

	record.SNREstimate = a.scorer.EstimateSNR(rms)
	record.HarmonicNoiseRatio = a.extractor.HarmonicRatio(buf)

	silence := a.scorer.SilenceMetrics(a.extractor.FrameEnergy(buf), buf.Duration(), buf.SampleRate)
	record.EffectiveDuration = silence.EffectiveDuration
	record.SilenceRatio = silence.SilenceRatio

	record.QualityScore = a.scorer.CompositeScore(
		record.Duration,
		record.SNREstimate,
		record.HarmonicNoiseRatio,
		record.SilenceRatio,
	)

	logger.Debug("Analysis completed", logging.Fields{
		"duration":       record.Duration,
		"snr_estimate":   record.SNREstimate,
		"harmonic_ratio": record.HarmonicNoiseRatio,
		"silence_ratio":  record.SilenceRatio,
		"quality_score":  record.QualityScore,
	})

	return record, nil
}
