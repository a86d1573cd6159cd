package refine

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RyanBlaney/voz-pura/audio"
	"github.com/RyanBlaney/voz-pura/dsp"
	"github.com/RyanBlaney/voz-pura/logging"
)

// RefinerConfig holds pipeline configuration
type RefinerConfig struct {
	TargetSampleRate int                  `json:"target_sample_rate"` // Stage 4 target
	TargetDuration   float64              `json:"target_duration"`    // Stage 5 clip length, seconds
	Backend          dsp.Kind             `json:"backend"`
	Decoder          *audio.DecoderConfig `json:"decoder"`
	Encoder          *audio.EncoderConfig `json:"encoder"`
}

// DefaultRefinerConfig returns the standard training-clip configuration
func DefaultRefinerConfig() *RefinerConfig {
	return &RefinerConfig{
		TargetSampleRate: DefaultTargetSampleRate,
		TargetDuration:   DefaultTargetDuration,
		Backend:          dsp.KindSpectral,
		Decoder:          audio.DefaultDecoderConfig(),
		Encoder:          audio.DefaultEncoderConfig(),
	}
}

// Result summarizes one refinement run
type Result struct {
	Input          string        `json:"input"`
	Output         string        `json:"output"`
	Duration       float64       `json:"duration"`    // Refined clip, seconds
	SampleRate     int           `json:"sample_rate"` // Refined clip
	SizeBytes      int64         `json:"size_bytes"`  // Persisted file
	ProcessingTime time.Duration `json:"processing_time"`
	Success        bool          `json:"success"`
	SkippedStages  []string      `json:"skipped_stages,omitempty"` // Stages that fell back to pass-through
}

// Refiner chains the five refinement stages and persists the result.
// Stages run strictly in order, each consuming the previous stage's
// output; intermediates are discarded as soon as they are superseded.
type Refiner struct {
	decoder *audio.Decoder
	encoder *audio.Encoder
	stages  []Stage
}

// NewRefiner creates a refiner. An unknown backend kind is an error.
func NewRefiner(config *RefinerConfig) (*Refiner, error) {
	if config == nil {
		config = DefaultRefinerConfig()
	}

	backend, err := dsp.New(config.Backend)
	if err != nil {
		return nil, err
	}

	return &Refiner{
		decoder: audio.NewDecoder(config.Decoder),
		encoder: audio.NewEncoder(config.Encoder),
		stages: []Stage{
			NewNormalize(),
			NewTrimSilence(),
			NewSpectralDenoise(backend),
			NewResample(config.TargetSampleRate),
			NewBestSegmentExtract(config.TargetDuration),
		},
	}, nil
}

// Refine decodes path, runs the stage chain, and writes the refined clip
// to outputDir as refined_<stem>.wav. Decode failures surface as
// *audio.DecodeError, write failures as *audio.PersistError; stage
// fallbacks never abort the run.
func (r *Refiner) Refine(path, outputDir string) (*Result, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "refiner",
		"file":      path,
	})

	started := time.Now()

	buf, err := r.decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	buf, skipped := r.RefineBuffer(buf)

	outputPath := filepath.Join(outputDir, OutputName(path))
	if err := r.encoder.EncodeWAV(outputPath, buf); err != nil {
		return nil, err
	}

	var sizeBytes int64
	if info, statErr := os.Stat(outputPath); statErr == nil {
		sizeBytes = info.Size()
	}

	result := &Result{
		Input:          path,
		Output:         outputPath,
		Duration:       buf.Duration(),
		SampleRate:     buf.SampleRate,
		SizeBytes:      sizeBytes,
		ProcessingTime: time.Since(started),
		Success:        true,
		SkippedStages:  skipped,
	}

	logger.Info("Refinement completed", logging.Fields{
		"output":          result.Output,
		"duration":        result.Duration,
		"sample_rate":     result.SampleRate,
		"processing_time": result.ProcessingTime.String(),
		"skipped_stages":  len(skipped),
	})

	return result, nil
}

// RefineBuffer runs the stage chain over an in-memory buffer, returning
// the refined buffer and the names of any stages that fell back to
// pass-through
func (r *Refiner) RefineBuffer(buf *audio.Buffer) (*audio.Buffer, []string) {
	var skipped []string

	for _, stage := range r.stages {
		out, ok := stage.Process(buf)
		if !ok {
			skipped = append(skipped, stage.Name())
		}
		buf = out
	}

	return buf, skipped
}

// OutputName derives the refined-clip filename from an input path:
// refined_<stem>.wav. Names are deterministic, so concurrent corpus runs
// never contend on output files.
func OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return "refined_" + stem + ".wav"
}
