package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/RyanBlaney/voz-pura/logging"
)

// EncoderConfig holds encoder configuration
type EncoderConfig struct {
	FFmpegPath string        `json:"ffmpeg_path"` // Path to ffmpeg binary
	Timeout    time.Duration `json:"timeout"`     // Timeout for subprocess calls
}

// DefaultEncoderConfig returns default encoder configuration
func DefaultEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		FFmpegPath: "ffmpeg",
		Timeout:    60 * time.Second,
	}
}

// Encoder persists buffers as 16-bit PCM WAV files via FFmpeg, the
// canonical format for refined clips
type Encoder struct {
	config *EncoderConfig
}

// NewEncoder creates a new audio encoder
func NewEncoder(config *EncoderConfig) *Encoder {
	if config == nil {
		config = DefaultEncoderConfig()
	}
	return &Encoder{config: config}
}

// EncodeWAV writes a buffer to path as WAV. Failures are reported as
// *PersistError.
func (e *Encoder) EncodeWAV(path string, buf *Buffer) error {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_encoder",
		"path":      path,
	})

	if buf == nil || len(buf.Samples) == 0 {
		return &PersistError{Path: path, Err: fmt.Errorf("empty buffer")}
	}
	if buf.SampleRate <= 0 {
		return &PersistError{Path: path, Err: fmt.Errorf("invalid sample rate: %d", buf.SampleRate)}
	}

	args := []string{
		"-v", "error",
		"-f", "f64le",
		"-ac", "1",
		"-ar", strconv.Itoa(buf.SampleRate),
		"-i", "pipe:0",
		"-c:a", "pcm_s16le",
		"-y", // Overwrite output derived from the same input name
		path,
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.config.FFmpegPath, args...)
	cmd.Stdin = bytes.NewReader(float64ToBytes(buf.Samples))

	if output, err := cmd.CombinedOutput(); err != nil {
		err = fmt.Errorf("ffmpeg encode failed: %w, stderr: %s", err, string(output))
		logger.Error(err, "Encode failed")
		return &PersistError{Path: path, Err: err}
	}

	logger.Debug("Encode completed", logging.Fields{
		"samples":     len(buf.Samples),
		"sample_rate": buf.SampleRate,
	})

	return nil
}

// float64ToBytes converts samples to raw f64le bytes
func float64ToBytes(samples []float64) []byte {
	data := make([]byte, len(samples)*8)
	for i, s := range samples {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(s))
	}
	return data
}
